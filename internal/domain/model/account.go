package model

import "time"

// Account — учётная запись администратора панели.
// Хранится в таблице usuarios_admin.
type Account struct {
	ID int64
	// NombreCompleto — полное имя
	NombreCompleto string
	// Correo — e-mail в институциональном домене
	Correo string
	// Usuario — логин (уникальный)
	Usuario string
	// ClaveHash — bcrypt-хэш пароля
	ClaveHash string
	// FechaCreacion — время регистрации
	FechaCreacion time.Time
}
