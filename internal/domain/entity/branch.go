package entity

import "time"

// Branch representa una sucursal física de la cadena. El código (ej. "karachi-1")
// es asignado por humanos y actúa como llave natural: stock y ventas lo referencian
// directamente, nunca un id interno, para que sigan siendo válidos aunque cambien
// los metadatos de la sucursal.
type Branch struct {
	Code      string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
