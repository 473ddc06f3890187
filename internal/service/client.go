package service

import (
	"strings"

	"connectrpc.com/connect"
)

// Client is a typed BillService client.
type Client struct {
	CreateBill    *connect.Client[CreateBillRequest, CreateBillResponse]
	CalculateBill *connect.Client[CalculateBillRequest, CalculateBillResponse]
	SaveBill      *connect.Client[SaveBillRequest, SaveBillResponse]
	ListBills     *connect.Client[ListBillsRequest, ListBillsResponse]
	GetBill       *connect.Client[GetBillRequest, GetBillResponse]
	GetBalances   *connect.Client[GetBalancesRequest, GetBalancesResponse]
}

// NewClient creates a client for the service at baseURL (e.g. http://localhost:8080).
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &Client{
		CreateBill:    connect.NewClient[CreateBillRequest, CreateBillResponse](httpClient, baseURL+CreateBillProcedure, opts...),
		CalculateBill: connect.NewClient[CalculateBillRequest, CalculateBillResponse](httpClient, baseURL+CalculateBillProcedure, opts...),
		SaveBill:      connect.NewClient[SaveBillRequest, SaveBillResponse](httpClient, baseURL+SaveBillProcedure, opts...),
		ListBills:     connect.NewClient[ListBillsRequest, ListBillsResponse](httpClient, baseURL+ListBillsProcedure, opts...),
		GetBill:       connect.NewClient[GetBillRequest, GetBillResponse](httpClient, baseURL+GetBillProcedure, opts...),
		GetBalances:   connect.NewClient[GetBalancesRequest, GetBalancesResponse](httpClient, baseURL+GetBalancesProcedure, opts...),
	}
}
