package model

import "time"

// Record — одна фича в таблице своей категории.
type Record struct {
	// ID — суррогатный ключ (SERIAL)
	ID int64
	// UsuarioID — владелец записи; nil, если владелец удалён
	UsuarioID *int64
	// FechaCreacion — время создания записи
	FechaCreacion time.Time
	// FechaActualizacion — время последнего обновления
	FechaActualizacion time.Time
	// Values — значения полей категории, включая имя файла.
	// Числовые поля представлены каноничной десятичной строкой.
	// nil означает NULL в БД.
	Values map[string]*string
	// UsuarioNombre — nombre_completo владельца (LEFT JOIN)
	UsuarioNombre *string
	// UsuarioEmail — correo владельца (LEFT JOIN)
	UsuarioEmail *string
}

// RecordPage — страница результатов списка фичей.
type RecordPage struct {
	Items []Record
	// Total — количество записей, удовлетворяющих фильтру (без LIMIT/OFFSET)
	Total int64
}
