package handlers

import (
	"net/http"

	services "github.com/spendtrack/spendtrack-services/api/services"
)

func GetSpendings(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetSpendingsService(svc, w, r)
	}
}

func CreateSpending(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.CreateSpendingService(svc, w, r)
	}
}

func UpdateSpending(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.UpdateSpendingService(svc, w, r)
	}
}

func DeleteSpending(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.DeleteSpendingService(svc, w, r)
	}
}
