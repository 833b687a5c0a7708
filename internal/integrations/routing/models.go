package routing

// DriveTimeResponse ответ сервиса маршрутов
type DriveTimeResponse struct {
	Minutes       int     `json:"minutes"`
	DistanceMiles float64 `json:"distance_miles"`
}

// ErrorResponse модель ошибки от сервиса маршрутов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
