package responses

type ResponseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type Redirect struct {
	Decision   string `json:"decision"`
	RedirectTo string `json:"redirect_to,omitempty"`
	From       string `json:"from,omitempty"`
}

type Count struct {
	Count int `json:"count"`
}
