package response

type MetaSuccess struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Code    int         `json:"code"`
}

type MetaError struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`

	Err error `json:"-"`
}
