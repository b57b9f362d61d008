package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"
)

// RespondWithJSON отправляет JSON ответ с указанным статус кодом
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// PaginatedResponse представляет страницу списочного ответа
type PaginatedResponse struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewPaginatedResponse собирает страницу со ссылками next/previous.
// Ссылки строятся из URL текущего запроса с сохранением остальных
// query-параметров.
func NewPaginatedResponse(r *http.Request, count, page, pageSize int, results interface{}) PaginatedResponse {
	resp := PaginatedResponse{
		Count:   count,
		Results: results,
	}

	if page*pageSize < count {
		next := pageURL(r, page+1)
		resp.Next = &next
	}
	if page > 1 {
		previous := pageURL(r, page-1)
		resp.Previous = &previous
	}

	return resp
}

func pageURL(r *http.Request, page int) string {
	u := *r.URL
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	u.RawQuery = query.Encode()
	return u.RequestURI()
}
