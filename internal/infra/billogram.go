package infra

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"billrun/internal/apierror"
	"billrun/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// The API expects prices as bare JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// BillogramClient talks to the Billogram HTTP API. It is safe to share
// across records: baseURL and the auth header are set once and never
// mutated, and the embedded *http.Client pools connections.
type BillogramClient struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewBillogramClient builds a client for the given API base. The Basic auth
// header is computed once per run from the two credential secrets.
func NewBillogramClient(baseURL, apiUser, apiPassword string, timeout time.Duration) *BillogramClient {
	creds := base64.StdEncoding.EncodeToString([]byte(apiUser + ":" + apiPassword))
	return &BillogramClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: "Basic " + creds,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FindCustomer looks up a customer by number. The boolean distinguishes the
// expected not-found outcome from genuine failures: (nil, false, nil) means
// the customer does not exist and may be created, while any returned error
// (malfunction, auth, …) is terminal for the record.
func (c *BillogramClient) FindCustomer(ctx context.Context, customerNo string) (*model.Customer, bool, error) {
	data, err := c.get(ctx, "/customer/"+url.PathEscape(customerNo))
	if err != nil {
		if apierror.IsKind(err, apierror.KindObjectNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	cust, err := decodeCustomer(data)
	if err != nil {
		return nil, false, err
	}
	return cust, true, nil
}

// CreateCustomer registers a new customer and returns the created record.
func (c *BillogramClient) CreateCustomer(ctx context.Context, body model.CustomerBody) (*model.Customer, error) {
	data, err := c.post(ctx, "/customer", body)
	if err != nil {
		return nil, err
	}
	return decodeCustomer(data)
}

// CreateBillogram creates a billogram; the on_success command in the body
// makes the service dispatch it immediately via the chosen send method.
func (c *BillogramClient) CreateBillogram(ctx context.Context, body model.BillogramBody) (*model.Billogram, error) {
	data, err := c.post(ctx, "/billogram", body)
	if err != nil {
		return nil, err
	}
	var bg model.Billogram
	if err := json.Unmarshal(data, &bg); err != nil {
		return nil, apierror.Newf(apierror.KindServiceMalfunctioning,
			"decoding billogram payload: %v", err)
	}
	bg.Raw = data
	return &bg, nil
}

func (c *BillogramClient) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("billogram: create request: %w", err)
	}
	return c.do(req)
}

func (c *BillogramClient) post(ctx context.Context, path string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("billogram: marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("billogram: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *BillogramClient) do(req *http.Request) (json.RawMessage, error) {
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("billogram: api unreachable: %w", err)
	}
	defer resp.Body.Close()

	return Classify(resp)
}

func decodeCustomer(data json.RawMessage) (*model.Customer, error) {
	var cust model.Customer
	if err := json.Unmarshal(data, &cust); err != nil {
		return nil, apierror.Newf(apierror.KindServiceMalfunctioning,
			"decoding customer payload: %v", err)
	}
	cust.Raw = data
	return &cust, nil
}
