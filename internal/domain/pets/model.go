package pets

import "time"

// MaxTextLength es el largo máximo (en caracteres) de name, species y owner_name.
const MaxTextLength = 255

// Pet representa el registro de una mascota.
// ID lo asigna el Store al insertar y no cambia después.
type Pet struct {
	ID int64

	Name      string
	Species   string
	Age       int
	OwnerName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateInput son los campos ya validados para crear una mascota.
type CreateInput struct {
	Name      string
	Species   string
	Age       int
	OwnerName string
}

// Patch es una actualización parcial: nil = no tocar.
type Patch struct {
	Name      *string
	Species   *string
	Age       *int
	OwnerName *string
}

// IsEmpty indica si el patch no trae ningún campo.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Species == nil && p.Age == nil && p.OwnerName == nil
}

// Apply devuelve una copia de pet con los campos del patch aplicados
// y si algo cambió efectivamente.
func (p Patch) Apply(pet Pet) (Pet, bool) {
	changed := false

	if p.Name != nil && *p.Name != pet.Name {
		pet.Name = *p.Name
		changed = true
	}
	if p.Species != nil && *p.Species != pet.Species {
		pet.Species = *p.Species
		changed = true
	}
	if p.Age != nil && *p.Age != pet.Age {
		pet.Age = *p.Age
		changed = true
	}
	if p.OwnerName != nil && *p.OwnerName != pet.OwnerName {
		pet.OwnerName = *p.OwnerName
		changed = true
	}

	return pet, changed
}
