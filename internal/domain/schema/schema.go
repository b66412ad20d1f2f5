// Пакет schema — реестр категорий фичей: закрытый набор таблиц
// и упорядоченных описаний полей для каждой из них.
// Реестр строится один раз при старте и после этого не изменяется.
package schema

import (
	"fmt"
	"slices"
)

// FieldKind — семантический тип поля фичи.
type FieldKind string

const (
	// KindText — произвольный текст (TEXT).
	KindText FieldKind = "text"
	// KindNumber — число с фиксированной точностью (NUMERIC(10,2)).
	KindNumber FieldKind = "number"
	// KindFile — имя загруженного файла (VARCHAR(255)).
	KindFile FieldKind = "file"
)

// StatsGroup — группа для сводной статистики.
type StatsGroup string

const (
	StatsCanes     StatsGroup = "canes_biologicos"
	StatsVehiculos StatsGroup = "vehiculos"
	StatsMuebles   StatsGroup = "muebles"
	StatsTecno     StatsGroup = "tecnologia"
)

// StatsGroups — порядок групп в сводной статистике.
var StatsGroups = []StatsGroup{StatsCanes, StatsVehiculos, StatsMuebles, StatsTecno}

// Field — описание одного поля категории.
type Field struct {
	Name string
	Kind FieldKind
}

// Category — описание категории: имя таблицы, маршрут и поля.
type Category struct {
	// Table — имя таблицы в БД, оно же имя категории в API.
	Table string
	// Group — первый сегмент маршрута создания (/api/fichas/{group}/{slug}).
	Group string
	// Slug — второй сегмент маршрута создания.
	Slug string
	// Stats — группа в сводной статистике.
	Stats StatsGroup
	// Fields — поля в порядке объявления.
	Fields []Field
}

// Route возвращает путь создания фичи для категории.
func (c Category) Route() string {
	return fmt.Sprintf("/api/fichas/%s/%s", c.Group, c.Slug)
}

// FileField возвращает поле типа file, если оно объявлено.
func (c Category) FileField() (Field, bool) {
	for _, f := range c.Fields {
		if f.Kind == KindFile {
			return f, true
		}
	}
	return Field{}, false
}

// ValueFields возвращает поля, значения которых приходят в теле запроса
// (все, кроме file).
func (c Category) ValueFields() []Field {
	out := make([]Field, 0, len(c.Fields))
	for _, f := range c.Fields {
		if f.Kind != KindFile {
			out = append(out, f)
		}
	}
	return out
}

// Registry — неизменяемый реестр категорий.
// Безопасен для конкурентного чтения без блокировок.
type Registry struct {
	order   []string
	byTable map[string]Category
	byRoute map[string]string
}

// New строит реестр из списка категорий.
// Возвращает ошибку при дублировании таблицы или маршрута,
// пустом списке полей или более чем одном поле типа file.
func New(categories []Category) (*Registry, error) {
	r := &Registry{
		order:   make([]string, 0, len(categories)),
		byTable: make(map[string]Category, len(categories)),
		byRoute: make(map[string]string, len(categories)),
	}

	for _, c := range categories {
		if !validIdentifier(c.Table) {
			return nil, fmt.Errorf("недопустимое имя таблицы %q", c.Table)
		}
		if _, dup := r.byTable[c.Table]; dup {
			return nil, fmt.Errorf("таблица %q объявлена дважды", c.Table)
		}
		route := routeKey(c.Group, c.Slug)
		if _, dup := r.byRoute[route]; dup {
			return nil, fmt.Errorf("маршрут %q объявлен дважды", c.Route())
		}
		if len(c.Fields) == 0 {
			return nil, fmt.Errorf("таблица %q: нет полей", c.Table)
		}

		files := 0
		seen := make(map[string]bool, len(c.Fields))
		for _, f := range c.Fields {
			if !validIdentifier(f.Name) {
				return nil, fmt.Errorf("таблица %q: недопустимое имя поля %q", c.Table, f.Name)
			}
			if seen[f.Name] {
				return nil, fmt.Errorf("таблица %q: поле %q объявлено дважды", c.Table, f.Name)
			}
			seen[f.Name] = true
			switch f.Kind {
			case KindText, KindNumber:
			case KindFile:
				files++
			default:
				return nil, fmt.Errorf("таблица %q: неизвестный тип поля %q", c.Table, f.Kind)
			}
		}
		if files > 1 {
			return nil, fmt.Errorf("таблица %q: более одного поля типа file", c.Table)
		}

		c.Fields = slices.Clone(c.Fields)
		r.order = append(r.order, c.Table)
		r.byTable[c.Table] = c
		r.byRoute[route] = c.Table
	}

	return r, nil
}

// Lookup возвращает категорию по имени таблицы.
func (r *Registry) Lookup(table string) (Category, bool) {
	c, ok := r.byTable[table]
	if !ok {
		return Category{}, false
	}
	c.Fields = slices.Clone(c.Fields)
	return c, true
}

// ByRoute возвращает категорию по сегментам маршрута создания.
func (r *Registry) ByRoute(group, slug string) (Category, bool) {
	table, ok := r.byRoute[routeKey(group, slug)]
	if !ok {
		return Category{}, false
	}
	return r.Lookup(table)
}

// All возвращает все категории в порядке объявления.
func (r *Registry) All() []Category {
	out := make([]Category, 0, len(r.order))
	for _, t := range r.order {
		c, _ := r.Lookup(t)
		out = append(out, c)
	}
	return out
}

// Len возвращает количество категорий.
func (r *Registry) Len() int {
	return len(r.order)
}

func routeKey(group, slug string) string {
	return group + "/" + slug
}

// validIdentifier допускает только [a-z0-9_], начиная с буквы.
// Имена таблиц и колонок попадают в SQL только после этой проверки.
func validIdentifier(s string) bool {
	if s == "" || len(s) > 63 {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
