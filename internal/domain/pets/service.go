package pets

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrNotFound = errors.New("pet not found")
)

type Service struct {
	repo   Repository
	now    func() time.Time
	tracer trace.Tracer
}

const tracerName = "petpulse/internal/domain/pets"

type Option func(*Service)

// WithTracerProvider usa tp en vez del provider global de otel.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		now:    time.Now,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List devuelve todas las mascotas en el orden del Store (id ascendente).
func (s *Service) List(ctx context.Context) (out []Pet, err error) {
	ctx, span := s.tracer.Start(ctx, "pets.List")
	defer func() { endSpan(span, err) }()

	out, err = s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Pet{}
	}
	span.SetAttributes(attribute.Int("pets.count", len(out)))
	return out, nil
}

// Create persiste una mascota ya validada. El id lo asigna el Store.
func (s *Service) Create(ctx context.Context, in CreateInput) (p Pet, err error) {
	ctx, span := s.tracer.Start(ctx, "pets.Create")
	defer func() { endSpan(span, err) }()

	now := s.timestamp()
	p, err = s.repo.Create(ctx, Pet{
		Name:      in.Name,
		Species:   in.Species,
		Age:       in.Age,
		OwnerName: in.OwnerName,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Pet{}, err
	}
	span.SetAttributes(attribute.Int64("pet.id", p.ID))
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (p Pet, err error) {
	ctx, span := s.tracer.Start(ctx, "pets.GetByID", trace.WithAttributes(attribute.Int64("pet.id", id)))
	defer func() { endSpan(span, err) }()

	return s.repo.GetByID(ctx, id)
}

// Update aplica el patch sobre el registro actual.
// Si no cambia ningún campo no se escribe nada y updated_at se mantiene.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (p Pet, err error) {
	ctx, span := s.tracer.Start(ctx, "pets.Update", trace.WithAttributes(attribute.Int64("pet.id", id)))
	defer func() { endSpan(span, err) }()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if patch.IsEmpty() {
		span.SetAttributes(attribute.Bool("pet.changed", false))
		return current, nil
	}

	merged, changed := patch.Apply(current)
	span.SetAttributes(attribute.Bool("pet.changed", changed))
	if !changed {
		return current, nil
	}

	merged.UpdatedAt = s.timestamp()
	if err := s.repo.Update(ctx, merged); err != nil {
		return Pet{}, err
	}
	return merged, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := s.tracer.Start(ctx, "pets.Delete", trace.WithAttributes(attribute.Int64("pet.id", id)))
	defer func() { endSpan(span, err) }()

	return s.repo.Delete(ctx, id)
}

// Mongo guarda milisegundos; truncamos para que lo devuelto coincida con lo leído después
// en cualquier backend.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
