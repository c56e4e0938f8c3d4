package httphandler

import "github.com/modabridge/storefront/internal/core/domain"

type (
	EnquiryRequest struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}

	SubscribeRequest struct {
		Email string `json:"email"`
	}

	TrackRequest struct {
		Path      string `json:"path"`
		Referrer  string `json:"referrer"`
		VisitorID string `json:"visitorId"`
		ProductID string `json:"productId"`
	}

	ClickRequest struct {
		ProductID string `json:"productId"`
	}

	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	ClientSessionRequest struct {
		UserID string `json:"userId"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}

	OrderRequest struct {
		Items         []domain.OrderItem `json:"items"`
		PaymentMethod string             `json:"paymentMethod"`
	}

	TeamMemberRequest struct {
		Name        string   `json:"name"`
		Email       string   `json:"email"`
		Password    string   `json:"password"`
		Role        string   `json:"role"`
		Permissions []string `json:"permissions"`
	}

	SaveStatusResponse struct {
		Status string `json:"status"`
	}

	MutationResponse struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}

	UploadResponse struct {
		URL string `json:"url"`
	}

	ErrorResponse struct {
		Error string `json:"error"`
	}
)
