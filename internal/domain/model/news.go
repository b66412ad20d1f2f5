package model

import "time"

// NewsItem — новость панели. Хранится в таблице noticias.
type NewsItem struct {
	ID        int64
	Titulo    string
	Contenido string
	// Imagen — имя сохранённого файла (может отсутствовать у старых записей)
	Imagen        *string
	FechaCreacion time.Time
}
