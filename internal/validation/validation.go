// Package validation реализует декларативную проверку черновика формы регистрации.
//
// Правила задаются тегами go-playground/validator в models.Draft; пакет регистрирует
// собственные теги (doctype, phone, image) и переводит нарушения в человеко‑читаемые
// сообщения для каждого поля отдельно.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/trd-registration/internal/models"
)

// MaxPhotos — максимальное число фотографий в одной регистрации.
const MaxPhotos = 4

// MaxPhotoSize — максимальный размер одной фотографии в байтах.
const MaxPhotoSize = 2 * 1024 * 1024

var phonePattern = regexp.MustCompile(`^\+[\d\s-]{8,}$`)

// FieldErrors отображает имя поля в сообщение о нарушении.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return strings.Join(parts, ", ")
}

// messages содержит тексты нарушений по полю и тегу.
var messages = map[string]map[string]string{
	"name": {
		"required": "El nombre es requerido",
		"min":      "El nombre debe tener al menos 2 caracteres",
	},
	"last_name": {
		"required": "El apellido es requerido",
		"min":      "El apellido debe tener al menos 2 caracteres",
	},
	"document_type": {
		"required": "El tipo de documento es requerido",
		"doctype":  "Tipo de documento inválido",
	},
	"doc_number": {
		"required": "El número de documento es requerido",
		"min":      "El número de documento debe tener al menos 8 caracteres",
	},
	"email": {
		"required": "El correo electrónico es requerido",
		"email":    "Correo electrónico inválido",
	},
	"phone_number": {
		"required": "El número de teléfono es requerido",
		"phone":    "El número de teléfono debe comenzar con + y tener al menos 8 dígitos",
	},
	"photos": {
		"max": "Puedes subir hasta 4 imágenes",
	},
	"type": {
		"image": "Solo se permiten imágenes",
	},
	"size": {
		"max": "Cada imagen debe ser menor a 2MB",
	},
}

// Validator проверяет черновик регистрации.
type Validator struct {
	validate *validator.Validate
}

// New создаёт Validator с зарегистрированными пользовательскими тегами.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("doctype", func(fl validator.FieldLevel) bool {
		return models.IsDocumentType(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("image", func(fl validator.FieldLevel) bool {
		return strings.HasPrefix(fl.Field().String(), "image/")
	})
	return &Validator{validate: v}
}

// Validate проверяет черновик и возвращает запись без фотографий.
// Если черновик корректен, FieldErrors равен nil. Черновик не изменяется.
func (v *Validator) Validate(draft models.Draft) (models.UserRecord, FieldErrors) {
	err := v.validate.Struct(draft)
	if err == nil {
		return draft.Record(), nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return models.UserRecord{}, FieldErrors{"form": err.Error()}
	}

	fe := make(FieldErrors)
	for _, e := range verrs {
		field := topLevelField(e.Namespace())
		if _, ok := fe[field]; ok {
			continue
		}
		fe[field] = message(e.Field(), e.Tag())
	}
	return models.UserRecord{}, fe
}

// topLevelField превращает "Draft.photos[1].size" в "photos".
func topLevelField(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	if i := strings.IndexAny(namespace, ".["); i >= 0 {
		namespace = namespace[:i]
	}
	return namespace
}

func message(field, tag string) string {
	if byTag, ok := messages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	return "El campo " + field + " no es válido"
}
