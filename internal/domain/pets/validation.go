package pets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	FieldName      = "name"
	FieldSpecies   = "species"
	FieldAge       = "age"
	FieldOwnerName = "owner_name"
)

// FieldType es el tipo esperado de un campo del request.
type FieldType int

const (
	TypeString FieldType = iota
	TypeInteger
)

// FieldRule declara las restricciones de un campo.
// MaxLength = 0 significa sin límite.
type FieldRule struct {
	Field     string
	Required  bool
	Type      FieldType
	MaxLength int
}

// PetRules son las reglas de create. Update usa las mismas en ModePartial.
var PetRules = []FieldRule{
	{Field: FieldName, Required: true, Type: TypeString, MaxLength: MaxTextLength},
	{Field: FieldSpecies, Required: true, Type: TypeString, MaxLength: MaxTextLength},
	{Field: FieldAge, Required: true, Type: TypeInteger},
	{Field: FieldOwnerName, Required: true, Type: TypeString, MaxLength: MaxTextLength},
}

// Mode define cómo se tratan los campos ausentes.
type Mode int

const (
	// ModeCreate: un campo requerido ausente es una violación.
	ModeCreate Mode = iota
	// ModePartial: los campos ausentes se ignoran; los presentes se validan igual que en create.
	ModePartial
)

// Violation es una regla incumplida por un campo.
type Violation struct {
	Field   string
	Message string
}

// Values son los valores normalizados (string trimmeado o int) por campo.
type Values map[string]any

func (v Values) String(field string) (string, bool) {
	s, ok := v[field].(string)
	return s, ok
}

func (v Values) Int(field string) (int, bool) {
	n, ok := v[field].(int)
	return n, ok
}

// Validate evalúa las reglas sobre el objeto JSON recibido.
// Es una función pura: no toca el Store. Reporta a lo sumo una violación por campo,
// en el orden de rules. Los campos que no están en rules se ignoran.
func Validate(input map[string]json.RawMessage, rules []FieldRule, mode Mode) (Values, []Violation) {
	values := Values{}
	var violations []Violation

	for _, rule := range rules {
		raw, present := input[rule.Field]
		if !present {
			if mode == ModeCreate && rule.Required {
				violations = append(violations, Violation{Field: rule.Field, Message: requiredMessage(rule.Field)})
			}
			continue
		}

		v, msg := checkField(rule, raw)
		if msg != "" {
			violations = append(violations, Violation{Field: rule.Field, Message: msg})
			continue
		}
		if v != nil {
			values[rule.Field] = v
		}
	}

	return values, violations
}

// ValidateCreate valida un body de create y lo convierte a CreateInput.
// Si hay violaciones devuelve *ValidationError.
func ValidateCreate(input map[string]json.RawMessage) (CreateInput, error) {
	values, violations := Validate(input, PetRules, ModeCreate)
	if len(violations) > 0 {
		return CreateInput{}, &ValidationError{Violations: violations}
	}

	name, _ := values.String(FieldName)
	species, _ := values.String(FieldSpecies)
	age, _ := values.Int(FieldAge)
	owner, _ := values.String(FieldOwnerName)

	return CreateInput{
		Name:      name,
		Species:   species,
		Age:       age,
		OwnerName: owner,
	}, nil
}

// ValidatePatch valida un body de update (cualquier subconjunto de campos).
func ValidatePatch(input map[string]json.RawMessage) (Patch, error) {
	values, violations := Validate(input, PetRules, ModePartial)
	if len(violations) > 0 {
		return Patch{}, &ValidationError{Violations: violations}
	}

	var p Patch
	if s, ok := values.String(FieldName); ok {
		p.Name = &s
	}
	if s, ok := values.String(FieldSpecies); ok {
		p.Species = &s
	}
	if n, ok := values.Int(FieldAge); ok {
		p.Age = &n
	}
	if s, ok := values.String(FieldOwnerName); ok {
		p.OwnerName = &s
	}
	return p, nil
}

// checkField devuelve el valor normalizado o el mensaje de la primera regla que falla.
// Un null no requerido se trata como ausente (valor nil, sin mensaje).
func checkField(rule FieldRule, raw json.RawMessage) (any, string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		if rule.Required {
			return nil, requiredMessage(rule.Field)
		}
		return nil, ""
	}

	switch rule.Type {
	case TypeString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Sprintf("The %s field must be a string.", label(rule.Field))
		}
		s = strings.TrimSpace(s)
		if s == "" {
			if rule.Required {
				return nil, requiredMessage(rule.Field)
			}
			return nil, ""
		}
		if rule.MaxLength > 0 && utf8.RuneCountInString(s) > rule.MaxLength {
			return nil, fmt.Sprintf("The %s field must not be greater than %d characters.", label(rule.Field), rule.MaxLength)
		}
		return s, ""

	case TypeInteger:
		token := string(raw)
		if raw[0] == '"' {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, integerMessage(rule.Field)
			}
			token = strings.TrimSpace(s)
			if token == "" {
				if rule.Required {
					return nil, requiredMessage(rule.Field)
				}
				return nil, ""
			}
		}
		if n, err := strconv.Atoi(token); err == nil {
			return n, ""
		}
		// números JSON con parte decimal nula (4.0, 1e2) cuentan como enteros; "4.0" no
		if raw[0] != '"' {
			if f, err := strconv.ParseFloat(token, 64); err == nil &&
				f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
				return int(f), ""
			}
		}
		return nil, integerMessage(rule.Field)
	}

	return nil, fmt.Sprintf("The %s field has an unsupported type.", label(rule.Field))
}

func requiredMessage(field string) string {
	return fmt.Sprintf("The %s field is required.", label(field))
}

func integerMessage(field string) string {
	return fmt.Sprintf("The %s field must be an integer.", label(field))
}

// owner_name => "owner name"
func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// ValidationError agrupa las violaciones de un request.
type ValidationError struct {
	Violations []Violation
}

// Error devuelve el primer mensaje y cuántos más hay, p.ej.
// "The name field is required. (and 2 more errors)".
func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "validation failed"
	}

	msg := e.Violations[0].Message
	rest := len(e.Violations) - 1
	switch {
	case rest == 1:
		msg += " (and 1 more error)"
	case rest > 1:
		msg += fmt.Sprintf(" (and %d more errors)", rest)
	}
	return msg
}

// Fields agrupa los mensajes por campo.
func (e *ValidationError) Fields() map[string][]string {
	out := make(map[string][]string, len(e.Violations))
	for _, v := range e.Violations {
		out[v.Field] = append(out[v.Field], v.Message)
	}
	return out
}
