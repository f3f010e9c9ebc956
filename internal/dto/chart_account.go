package dto

import (
	"time"

	"github.com/propledger/property_ledger_app/internal/core/domain"
)

// CreateChartAccountRequest defines the data needed to create a chart account.
type CreateChartAccountRequest struct {
	AccountCode     string             `json:"accountCode" binding:"required"`
	AccountName     string             `json:"accountName" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional, must match the child's account type
	Description     string             `json:"description"`
}

// UpdateChartAccountRequest defines the fields that may be changed on an
// account. Pointers distinguish "not provided" from zero values.
type UpdateChartAccountRequest struct {
	AccountName *string `json:"accountName"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// ListChartAccountsParams defines query parameters for the account tree.
type ListChartAccountsParams struct {
	IncludeInactive bool `form:"includeInactive,default=false"`
}

// ChartAccountResponse defines the data returned for a chart account.
type ChartAccountResponse struct {
	ChartAccountID  string             `json:"chartAccountID"`
	EntityID        string             `json:"entityID"`
	AccountCode     string             `json:"accountCode"`
	AccountName     string             `json:"accountName"`
	AccountType     domain.AccountType `json:"accountType"`
	ParentAccountID string             `json:"parentAccountID"`
	Description     string             `json:"description"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
}

// ChartAccountSummary is the compact form used for parent/child listings.
type ChartAccountSummary struct {
	ChartAccountID string             `json:"chartAccountID"`
	AccountCode    string             `json:"accountCode"`
	AccountName    string             `json:"accountName"`
	AccountType    domain.AccountType `json:"accountType"`
	IsActive       bool               `json:"isActive"`
}

// ChartAccountTreeNode is an account with its nested children.
type ChartAccountTreeNode struct {
	ChartAccountResponse
	Children []ChartAccountTreeNode `json:"children"`
}

// ChartAccountDetailResponse is the full single-account view: the account,
// its parent and children summaries, its most recent ledger entries and the
// total number of entries posted against it.
type ChartAccountDetailResponse struct {
	Account       ChartAccountResponse  `json:"account"`
	Parent        *ChartAccountSummary  `json:"parent,omitempty"`
	Children      []ChartAccountSummary `json:"children"`
	RecentEntries []LedgerEntryResponse `json:"recentEntries"`
	EntryCount    int64                 `json:"entryCount"`
}

// ListChartAccountsResponse wraps the hierarchical account listing.
type ListChartAccountsResponse struct {
	Accounts []ChartAccountTreeNode `json:"accounts"`
}

// ToChartAccountResponse converts a domain chart account to its response DTO.
func ToChartAccountResponse(a *domain.ChartAccount) ChartAccountResponse {
	return ChartAccountResponse{
		ChartAccountID:  a.ChartAccountID,
		EntityID:        a.EntityID,
		AccountCode:     a.AccountCode,
		AccountName:     a.AccountName,
		AccountType:     a.AccountType,
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		IsActive:        a.IsActive,
		CreatedAt:       a.CreatedAt,
		LastUpdatedAt:   a.LastUpdatedAt,
	}
}

// ToChartAccountSummary converts a domain chart account to its summary DTO.
func ToChartAccountSummary(a *domain.ChartAccount) ChartAccountSummary {
	return ChartAccountSummary{
		ChartAccountID: a.ChartAccountID,
		AccountCode:    a.AccountCode,
		AccountName:    a.AccountName,
		AccountType:    a.AccountType,
		IsActive:       a.IsActive,
	}
}

// ToChartAccountTree converts domain tree nodes to response tree nodes.
func ToChartAccountTree(nodes []domain.ChartAccountNode) []ChartAccountTreeNode {
	out := make([]ChartAccountTreeNode, len(nodes))
	for i := range nodes {
		out[i] = ChartAccountTreeNode{
			ChartAccountResponse: ToChartAccountResponse(&nodes[i].ChartAccount),
			Children:             ToChartAccountTree(nodes[i].Children),
		}
	}
	return out
}

// ToListChartAccountResponse converts a flat slice of accounts.
func ToListChartAccountResponse(accounts []domain.ChartAccount) []ChartAccountResponse {
	res := make([]ChartAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToChartAccountResponse(&accounts[i])
	}
	return res
}
