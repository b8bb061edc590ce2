package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// page и pageSize необязательны, нормализацию делает сервис
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Search: query.Get("search"),
	}

	if pageStr := query.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return nil, fmt.Errorf("invalid page value: %w", err)
		}
		req.Page = page
	}

	if sizeStr := query.Get("pageSize"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid pageSize value: %w", err)
		}
		req.PageSize = size
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	return req, nil
}
