// Package generator derives parameter schemas from Go structs.
//
// Field names come from the json tag. A field is required unless its json
// tag has omitempty or it is a pointer. Other tags refine the property:
//
//	description:"..."    human readable description
//	default:"4"          default value, parsed for the field's kind
//	enum:"L,M,Q,H"       allowed string values
//	minimum:"1"          numeric lower bound
//	maximum:"100"        numeric upper bound
//	minLength:"1"        string length bounds
//	maxLength:"500"
//	pattern:"^[a-z]+$"   string pattern
package generator
