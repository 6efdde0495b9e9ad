package straico

// apiEnvelope is the outer shape shared by all Straico responses.
type apiEnvelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// apiUser is the /v0/user payload.
type apiUser struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Coins     float64 `json:"coins"`
	Plan      string  `json:"plan"`
}

// apiModel is one entry of the basic /v0/models listing.
type apiModel struct {
	Name    string `json:"name"`
	Model   string `json:"model"`
	Pricing struct {
		Coins float64 `json:"coins"`
	} `json:"pricing"`
	MaxOutput int `json:"max_output"`
}

// apiDetailedModels is the categorized /v1/models payload.
type apiDetailedModels struct {
	Chat  []apiDetailedModel `json:"chat"`
	Image []apiDetailedModel `json:"image"`
}

type apiDetailedModel struct {
	Name    string `json:"name"`
	Model   string `json:"model"`
	Pricing struct {
		Coins float64 `json:"coins"`
	} `json:"pricing"`
	MaxOutput int      `json:"max_output"`
	Features  []string `json:"features"`
}

// apiCompletion is the /v1/prompt/completion payload. Completions is keyed by
// model identifier; with the smart selector the chosen model's key is only
// known from the response.
type apiCompletion struct {
	OverallPrice struct {
		Input  float64 `json:"input"`
		Output float64 `json:"output"`
		Total  float64 `json:"total"`
	} `json:"overall_price"`
	OverallWords struct {
		Input  int `json:"input"`
		Output int `json:"output"`
		Total  int `json:"total"`
	} `json:"overall_words"`
	Completions map[string]apiModelCompletion `json:"completions"`
}

type apiModelCompletion struct {
	Completion struct {
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	} `json:"completion"`
	Price struct {
		Input  float64 `json:"input"`
		Output float64 `json:"output"`
		Total  float64 `json:"total"`
	} `json:"price"`
	Words struct {
		Input  int `json:"input"`
		Output int `json:"output"`
		Total  int `json:"total"`
	} `json:"words"`
}

// completionRequest is the /v1/prompt/completion request body. Exactly one of
// Models or SmartSelector is set.
type completionRequest struct {
	Models        []string       `json:"models,omitempty"`
	SmartSelector *smartSelector `json:"smart_llm_selector,omitempty"`
	Message       string         `json:"message"`
	Temperature   float64        `json:"temperature"`
	MaxTokens     int            `json:"max_tokens"`
}

type smartSelector struct {
	Quantity      int    `json:"quantity"`
	PricingMethod string `json:"pricing_method"`
}
