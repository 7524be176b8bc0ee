package pets

import "context"

// Repository es el Store de mascotas. Cualquier backend (memoria, SQL, documentos)
// lo implementa. GetByID, Update y Delete devuelven ErrNotFound si el id no existe.
type Repository interface {
	List(ctx context.Context) ([]Pet, error)
	GetByID(ctx context.Context, id int64) (Pet, error)
	// Create inserta y devuelve la mascota con el ID asignado.
	Create(ctx context.Context, p Pet) (Pet, error)
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id int64) error
}
