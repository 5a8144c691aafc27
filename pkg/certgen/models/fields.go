package models

// EmailField is the field whose value completes every output file name.
const EmailField = "email"

// DateField is the field that receives date formatting and the today fallback.
const DateField = "date"

// FieldValues maps field name to the display string for one recipient.
type FieldValues map[string]string
