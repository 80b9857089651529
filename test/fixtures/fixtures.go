package fixtures

import (
	"time"

	"github.com/syndicma/syndic-api/internal/model"
)

var (
	TestResidence1 = model.Residence{
		ID:            1,
		Name:          "Résidence Al Amane",
		Address:       "12 Rue des Orangers, Casablanca",
		NumApartments: 24,
		Contact:       "0522-000000",
	}

	TestResidence2 = model.Residence{
		ID:            2,
		Name:          "Résidence Yasmine",
		Address:       "5 Avenue Hassan II, Rabat",
		NumApartments: 12,
		Contact:       "0537-111111",
	}
)

func NewTestResidenceRequest(name string) model.ResidenceCreateRequest {
	return model.ResidenceCreateRequest{
		Name:          name,
		Address:       "12 Rue des Orangers, Casablanca",
		NumApartments: 24,
		Contact:       "0522-000000",
	}
}

func NewTestClientRequest(residenceID int64, name string, balance float64) model.ClientCreateRequest {
	return model.ClientCreateRequest{
		Name:          name,
		Balance:       &balance,
		PaymentStatus: model.StatusUnpaid,
		ResidenceID:   residenceID,
	}
}

func NewTestInvoiceRequest(clientID int64, month, year int, amount float64, status model.PaymentStatus) model.InvoiceUpsertRequest {
	return model.InvoiceUpsertRequest{
		ClientID: clientID,
		Month:    month,
		Year:     year,
		Amount:   amount,
		Status:   status,
	}
}

func NewTestPaymentRequest(clientID int64, month string, amount float64, status model.PaymentStatus) model.PaymentUpsertRequest {
	return model.PaymentUpsertRequest{
		ClientID: clientID,
		Month:    month,
		Amount:   amount,
		Status:   status,
	}
}

func NewTestNotificationRequest(title string, triggerDate time.Time, userID *int64) model.NotificationCreateRequest {
	return model.NotificationCreateRequest{
		Title:       title,
		Description: "Rappel de test",
		TriggerDate: triggerDate,
		UserID:      userID,
	}
}

func NewTestUserRequest(username, email string) model.UserCreateRequest {
	return model.UserCreateRequest{
		Username: username,
		Email:    email,
		Password: "secret123",
		Role:     model.RoleUser,
	}
}

var (
	ValidPaymentMonths = []string{
		"2024-01",
		"2024-12",
		"2025-06",
	}

	InvalidPaymentMonths = []string{
		"",
		"2024-13",
		"2024-00",
		"24-01",
		"janvier 2024",
	}
)
