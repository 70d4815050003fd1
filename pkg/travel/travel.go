package travel

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Abraxas-365/traveldocs/pkg/errx"
)

// SystemPrompt is the fixed instruction every conversation starts with
const SystemPrompt = "You are a travel documentation assistant. " +
	"For any query, return ONLY a JSON object with these keys: " +
	"required_visa_documentation, passport_requirements, " +
	"additional_documents, travel_advisories."

// Keys the model is instructed to return
const (
	KeyRequiredVisaDocumentation = "required_visa_documentation"
	KeyPassportRequirements      = "passport_requirements"
	KeyAdditionalDocuments       = "additional_documents"
	KeyTravelAdvisories          = "travel_advisories"
)

// RequiredKeys lists the keys a reply must contain, in prompt order
var RequiredKeys = []string{
	KeyRequiredVisaDocumentation,
	KeyPassportRequirements,
	KeyAdditionalDocuments,
	KeyTravelAdvisories,
}

// ============================================================================
// Requests / Responses
// ============================================================================

// TravelInfoRequest is one traveler query within a conversation
type TravelInfoRequest struct {
	DestinationCountry string `json:"destination_country"`
	Nationality        string `json:"nationality"`
	ConversationID     string `json:"conversation_id"`
}

// Validate checks that every field is present and non-blank
func (r TravelInfoRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.DestinationCountry) == "" {
		missing = append(missing, "destination_country")
	}
	if strings.TrimSpace(r.Nationality) == "" {
		missing = append(missing, "nationality")
	}
	if strings.TrimSpace(r.ConversationID) == "" {
		missing = append(missing, "conversation_id")
	}
	if len(missing) > 0 {
		return ErrValidation().
			WithMessage(fmt.Sprintf("Missing or empty fields: %s", strings.Join(missing, ", "))).
			WithDetail("missing_fields", missing)
	}
	return nil
}

// Prompt renders the user message sent to the model for this request
func (r TravelInfoRequest) Prompt() string {
	return fmt.Sprintf(
		"Provide travel documentation details for a traveler from %s going to %s.",
		r.Nationality, r.DestinationCountry,
	)
}

// Requirements is the structured reply of the model. Values are whatever JSON
// the model produced for each key (usually strings or lists).
type Requirements struct {
	RequiredVisaDocumentation any `json:"required_visa_documentation"`
	PassportRequirements      any `json:"passport_requirements"`
	AdditionalDocuments       any `json:"additional_documents"`
	TravelAdvisories          any `json:"travel_advisories"`
}

// TravelInfoResponse is returned for a successful turn
type TravelInfoResponse struct {
	DestinationCountry string        `json:"destination_country"`
	Nationality        string        `json:"nationality"`
	Requirements       *Requirements `json:"requirements"`
	ConversationID     string        `json:"conversation_id"`
}

// ============================================================================
// Errors
// ============================================================================

var ErrRegistry = errx.NewRegistry("TRAVEL")

var (
	CodeValidation          = ErrRegistry.Register("VALIDATION", errx.TypeValidation, http.StatusUnprocessableEntity, "Invalid request body")
	CodeSessionEnded        = ErrRegistry.Register("SESSION_ENDED", errx.TypeBusiness, http.StatusBadRequest, "The chat session has ended. Please start a new session.")
	CodeUpstreamCallFailed  = ErrRegistry.Register("UPSTREAM_CALL_FAILED", errx.TypeExternal, http.StatusInternalServerError, "Error with LLM gateway")
	CodeUpstreamInvalidJSON = ErrRegistry.Register("UPSTREAM_INVALID_JSON", errx.TypeExternal, http.StatusInternalServerError, "Model did not return valid JSON.")
)

func ErrValidation() *errx.Error {
	return ErrRegistry.New(CodeValidation)
}

func ErrSessionEnded() *errx.Error {
	return ErrRegistry.New(CodeSessionEnded)
}

// ErrUpstreamCall reports a failed network call to the gateway
func ErrUpstreamCall(cause error) *errx.Error {
	e := ErrRegistry.NewWithCause(CodeUpstreamCallFailed, cause)
	return e.WithMessage(fmt.Sprintf("%s: %v", e.Message, cause))
}

// ErrUpstreamParse reports a gateway reply that is not the expected JSON object
func ErrUpstreamParse(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeUpstreamInvalidJSON, cause)
}
