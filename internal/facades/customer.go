package facades

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/stellar/anchor-platform-sub000/internal/logger"
	"github.com/stellar/anchor-platform-sub000/internal/models"
)

// CustomerFacade resolves customers through the anchor's customer callback API.
type CustomerFacade struct {
	client *resty.Client
}

// NewCustomerFacade creates a facade for the callback API at baseURL.
func NewCustomerFacade(baseURL string, timeout time.Duration) *CustomerFacade {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &CustomerFacade{client: client}
}

// GetCustomer fetches the customer with id. An unknown customer is (nil, nil).
func (f *CustomerFacade) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("id", id).
		SetResult(&customer).
		Get("/customer")
	if err != nil {
		logger.Log.Errorw("failed to fetch customer", "customer_id", id, "error", err)
		return nil, errors.Wrapf(err, "get customer %s", id)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, errors.Errorf("get customer %s: callback returned %s", id, resp.Status())
	}
	if customer.ID == "" {
		return nil, nil
	}
	return &customer, nil
}
