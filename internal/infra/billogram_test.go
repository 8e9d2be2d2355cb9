package infra

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"billrun/internal/apierror"
	"billrun/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory Billogram service used to exercise the real HTTP
// client end to end: routing, auth header, request shapes, envelope decoding.
type fakeAPI struct {
	customers     map[string]gin.H
	lastAuth      string
	lastReqID     string
	lastBilloBody []byte
}

func newFakeAPI() (*fakeAPI, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	f := &fakeAPI{customers: map[string]gin.H{}}
	r := gin.New()

	capture := func(c *gin.Context) {
		f.lastAuth = c.GetHeader("Authorization")
		f.lastReqID = c.GetHeader("X-Request-ID")
	}

	r.GET("/customer/:no", func(c *gin.Context) {
		capture(c)
		cust, ok := f.customers[c.Param("no")]
		if !ok {
			c.JSON(404, gin.H{"status": "NOT_FOUND", "data": gin.H{}})
			return
		}
		c.JSON(200, gin.H{"status": "OK", "data": cust})
	})
	r.POST("/customer", func(c *gin.Context) {
		capture(c)
		var body model.CustomerBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, gin.H{"status": "INVALID_PARAMETER", "data": gin.H{"message": err.Error()}})
			return
		}
		cust := gin.H{"customer_no": body.CustomerNo, "name": body.Name}
		f.customers[body.CustomerNo] = cust
		c.JSON(200, gin.H{"status": "OK", "data": cust})
	})
	r.POST("/billogram", func(c *gin.Context) {
		capture(c)
		f.lastBilloBody, _ = c.GetRawData()
		c.JSON(200, gin.H{"status": "OK", "data": gin.H{"id": "bg-4711"}})
	})
	return f, r
}

func newTestClient(t *testing.T) (*fakeAPI, *BillogramClient) {
	t.Helper()
	fake, engine := newFakeAPI()
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return fake, NewBillogramClient(srv.URL, "apiuser", "sekret", 5*time.Second)
}

func TestFindCustomer(t *testing.T) {
	fake, client := newTestClient(t)

	t.Run("not found is an outcome, not an error", func(t *testing.T) {
		cust, found, err := client.FindCustomer(context.Background(), "9999")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, cust)
	})

	t.Run("existing customer is returned", func(t *testing.T) {
		fake.customers["1001"] = gin.H{"customer_no": 1001, "name": "Terry"}
		cust, found, err := client.FindCustomer(context.Background(), "1001")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "1001", cust.CustomerNo.String())
		assert.Equal(t, "Terry", cust.Name)
	})

	t.Run("basic auth header is sent", func(t *testing.T) {
		_, _, err := client.FindCustomer(context.Background(), "1001")
		require.NoError(t, err)
		want := "Basic " + base64.StdEncoding.EncodeToString([]byte("apiuser:sekret"))
		assert.Equal(t, want, fake.lastAuth)
		assert.NotEmpty(t, fake.lastReqID)
	})
}

func TestCreateCustomer(t *testing.T) {
	fake, client := newTestClient(t)

	cust, err := client.CreateCustomer(context.Background(), model.CustomerBody{
		CustomerNo: "2002",
		Name:       "Eric Idle",
		Contact:    model.ContactField{Email: "eric@example.com"},
		Address:    model.AddressField{StreetAddress: "Lillgatan 2", Zipcode: "22233", City: "Lund"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2002", cust.CustomerNo.String())
	assert.Contains(t, fake.customers, "2002")
}

func TestCreateBillogram(t *testing.T) {
	fake, client := newTestClient(t)

	item := model.ItemField{
		Title: "Box Set",
		Price: decimal.NewFromFloat(125).Div(decimal.NewFromFloat(1.25)),
		VAT:   25,
		Count: 1,
	}
	bg, err := client.CreateBillogram(context.Background(), model.BillogramBody{
		InvoiceNo: "INV-9",
		Customer:  model.CustomerRef{CustomerNo: "2002"},
		Items:     []model.ItemField{item},
		OnSuccess: model.OnSuccess{Command: "send", Method: model.SendEmail},
	})
	require.NoError(t, err)
	assert.Equal(t, "bg-4711", bg.ID)

	// The wire body must carry bare numeric prices and the send instruction.
	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(fake.lastBilloBody, &sent))
	assert.JSONEq(t, `[{"title":"Box Set","price":100,"vat":25,"count":1}]`, string(sent["items"]))
	assert.JSONEq(t, `{"command":"send","method":"Email"}`, string(sent["on_success"]))
}

func TestClientPropagatesDomainErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/customer/:no", func(c *gin.Context) {
		c.JSON(403, gin.H{"status": "INVALID_AUTH", "data": gin.H{}})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client := NewBillogramClient(srv.URL, "u", "p", 5*time.Second)
	_, _, err := client.FindCustomer(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidAuthentication))
}
