// internal/domain/checkout/validation.go
package checkout

import (
	"regexp"
	"sort"
	"strings"
)

// emailPattern accepts anything shaped user@domain.tld. The gateway
// does the authoritative validation; this only blocks obvious typos.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Validation messages shown next to the checkout form fields.
const (
	msgRequired     = "Este campo es obligatorio"
	msgInvalidEmail = "Correo electrónico inválido"
	msgNoItems      = "El pedido no tiene productos"
	msgBadQuantity  = "Cantidad inválida"
)

// ValidationErrors maps request fields to messages. Submission is
// blocked while any message exists.
type ValidationErrors map[string]string

// Error implements the error interface
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "invalid checkout fields: " + strings.Join(fields, ", ")
}

// ItemInput is one purchased line as submitted by the storefront.
type ItemInput struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// CreatePreferenceRequest is the public checkout submission. Field
// names match the storefront form.
type CreatePreferenceRequest struct {
	DocumentID    string      `json:"cedula"`
	FirstName     string      `json:"nombre"`
	LastName      string      `json:"apellidos"`
	CountryRegion string      `json:"pais_region"`
	StreetAddress string      `json:"direccion_calle"`
	HouseNumber   string      `json:"numero_casa"`
	State         string      `json:"estado_municipio"`
	City          string      `json:"localidad_ciudad"`
	Phone         string      `json:"telefono"`
	Email         string      `json:"correo_electronico"`
	Ref           string      `json:"ref"`
	Items         []ItemInput `json:"items"`
	ShippingCost  int64       `json:"costo_envio"`
}

// Validate collects required-field and shape errors into a field→
// message map. An empty map means the submission may proceed.
func (r *CreatePreferenceRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}

	required := map[string]string{
		"cedula":             r.DocumentID,
		"nombre":             r.FirstName,
		"apellidos":          r.LastName,
		"direccion_calle":    r.StreetAddress,
		"estado_municipio":   r.State,
		"localidad_ciudad":   r.City,
		"telefono":           r.Phone,
		"correo_electronico": r.Email,
		"ref":                r.Ref,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = msgRequired
		}
	}

	if _, ok := errs["correo_electronico"]; !ok && !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		errs["correo_electronico"] = msgInvalidEmail
	}

	if len(r.Items) == 0 {
		errs["items"] = msgNoItems
	}
	for _, item := range r.Items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			errs["items"] = msgBadQuantity
			break
		}
	}

	return errs
}

// Total computes the order total: item lines plus shipping.
func (r *CreatePreferenceRequest) Total() int64 {
	var total int64
	for _, item := range r.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total + r.ShippingCost
}
