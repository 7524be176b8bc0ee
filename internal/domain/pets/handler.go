package pets

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"petpulse/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Límite del body de create/update. Un pet válido ocupa bastante menos.
const maxBodyBytes = 1 << 20

const notFoundMessage = "Pet not found"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))

		// PUT y PATCH son ambos parciales: los campos ausentes no se tocan.
		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))

		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

// petRequest documenta el body de create/update. El handler decodifica a un mapa
// para poder distinguir "ausente" de "null" y reportar errores de tipo por campo.
type petRequest struct {
	Name      string `json:"name" maxLength:"255" example:"Rex"`
	Species   string `json:"species" maxLength:"255" example:"Dog"`
	Age       int    `json:"age" example:"3"`
	OwnerName string `json:"owner_name" maxLength:"255" example:"Ana"`
}

// petResponse es la representación JSON de una mascota.
type petResponse struct {
	ID        int64     `json:"id" example:"1"`
	Name      string    `json:"name" example:"Rex"`
	Species   string    `json:"species" example:"Dog"`
	Age       int       `json:"age" example:"3"`
	OwnerName string    `json:"owner_name" example:"Ana"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type messageResponse struct {
	Message string `json:"message" example:"Pet not found"`
}

// validationErrorResponse es el body de un 422.
type validationErrorResponse struct {
	Message string              `json:"message" example:"The name field is required."`
	Errors  map[string][]string `json:"errors"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Devuelve todas las mascotas ordenadas por id. Sin mascotas devuelve [].
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Failure 500 {object} messageResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea una mascota. name, species y owner_name son strings de hasta 255 caracteres; age es entero. Todos requeridos.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body petRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} messageResponse "invalid json"
// @Failure 422 {object} validationErrorResponse
// @Failure 500 {object} messageResponse
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := decodeObject(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid json"})
			return
		}

		in, err := ValidateCreate(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}

		p, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// getPetHandler godoc
// @Summary Obtener mascota
// @Tags pets
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} messageResponse
// @Failure 500 {object} messageResponse
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(r)
		if !ok {
			writeNotFound(w)
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Actualización parcial (PUT o PATCH): sólo se validan y aplican los campos enviados. Un campo enviado como null es inválido.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Param payload body petRequest false "Cualquier subconjunto de campos"
// @Success 200 {object} petResponse
// @Failure 400 {object} messageResponse "invalid json"
// @Failure 404 {object} messageResponse
// @Failure 422 {object} validationErrorResponse
// @Failure 500 {object} messageResponse
// @Router /pets/{petID} [put]
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(r)
		if !ok {
			writeNotFound(w)
			return
		}

		// Primero existencia: un id inexistente es 404 aunque el body sea inválido.
		if _, err := svc.GetByID(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}

		raw, err := decodeObject(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid json"})
			return
		}

		patch, err := ValidatePatch(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, patch)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Tags pets
// @Param petID path int true "ID de la mascota"
// @Success 204
// @Failure 404 {object} messageResponse
// @Failure 500 {object} messageResponse
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(r)
		if !ok {
			writeNotFound(w)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		Name:      p.Name,
		Species:   p.Species,
		Age:       p.Age,
		OwnerName: p.OwnerName,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// petIDParam: un id que no es entero positivo nunca puede existir, el caller responde 404.
func petIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeObject lee el body como objeto JSON. Body vacío o null => objeto vacío.
func decodeObject(r *http.Request) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]json.RawMessage{}
	}
	return raw, nil
}

// writeError traduce errores del dominio a status HTTP.
// Sólo los errores inesperados se loguean como error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		log.Debug("validation failed", map[string]any{
			"path":   r.URL.Path,
			"fields": len(verr.Violations),
		})
		writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{
			Message: verr.Error(),
			Errors:  verr.Fields(),
		})
	case errors.Is(err, ErrNotFound):
		writeNotFound(w)
	default:
		log.Error("pets request failed", map[string]any{
			"method": r.Method,
			"path":   r.URL.Path,
			"error":  err.Error(),
		})
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Server Error"})
	}
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, messageResponse{Message: notFoundMessage})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
