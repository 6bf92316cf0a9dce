package events

import "reflect"

// ExtractGameID pulls the GameID field out of an event, if it has one
func ExtractGameID(event Event) string {
	val := reflect.ValueOf(event)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	field := val.FieldByName("GameID")
	if field.IsValid() && field.Kind() == reflect.String {
		return field.String()
	}
	return ""
}
