package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// Upsert describes an INSERT ... ON CONFLICT (...) DO UPDATE statement built
// from a db-tagged model.
type Upsert struct {
	Table string
	Model any
	// ConflictColumns form the unique key targeted by ON CONFLICT.
	ConflictColumns []string
	// UpdateColumns are refreshed from EXCLUDED on conflict. When empty every
	// model column outside ConflictColumns is updated.
	UpdateColumns []string
	// Touch lists columns set to NOW() on conflict, e.g. updated_at.
	Touch     []string
	Returning string
}

func (u Upsert) ToSQL() (string, []any, error) {
	if len(u.ConflictColumns) == 0 {
		return "", nil, fmt.Errorf("upsert conflict columns are required")
	}
	cols, vals, err := columnsAndValuesFromModel(u.Model)
	if err != nil {
		return "", nil, err
	}

	updates := u.UpdateColumns
	if len(updates) == 0 {
		conflict := make(map[string]struct{}, len(u.ConflictColumns))
		for _, c := range u.ConflictColumns {
			conflict[c] = struct{}{}
		}
		for _, c := range cols {
			if _, skip := conflict[c]; !skip {
				updates = append(updates, c)
			}
		}
	}

	var suffix strings.Builder
	suffix.WriteString("ON CONFLICT (")
	suffix.WriteString(strings.Join(u.ConflictColumns, ", "))
	suffix.WriteString(") ")
	sets := make([]string, 0, len(updates)+len(u.Touch))
	for _, c := range updates {
		sets = append(sets, c+" = EXCLUDED."+c)
	}
	for _, c := range u.Touch {
		sets = append(sets, c+" = NOW()")
	}
	if len(sets) == 0 {
		suffix.WriteString("DO NOTHING")
	} else {
		suffix.WriteString("DO UPDATE SET ")
		suffix.WriteString(strings.Join(sets, ", "))
	}
	if r := strings.TrimSpace(u.Returning); r != "" {
		suffix.WriteString(" RETURNING ")
		suffix.WriteString(r)
	}

	return InsertInto(u.Table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix.String()).
		ToSQL()
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		col := strings.TrimSpace(strings.Split(field.Tag.Get("db"), ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
