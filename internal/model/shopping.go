package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ShoppingCategory is the store/source bucket an item belongs to.
type ShoppingCategory int

const (
	CategoryFreshco ShoppingCategory = iota
	CategoryCostco
	CategoryAmazon
	CategoryOther
)

var categoryNames = map[ShoppingCategory]string{
	CategoryFreshco: "freshco",
	CategoryCostco:  "costco",
	CategoryAmazon:  "amazon",
	CategoryOther:   "other",
}

var categoryFromName = map[string]ShoppingCategory{
	"freshco": CategoryFreshco,
	"costco":  CategoryCostco,
	"amazon":  CategoryAmazon,
	"other":   CategoryOther,
}

func ParseShoppingCategory(s string) (ShoppingCategory, error) {
	c, ok := categoryFromName[s]
	if !ok {
		return CategoryFreshco, fmt.Errorf("unknown category: %q", s)
	}
	return c, nil
}

func (c ShoppingCategory) String() string {
	return categoryNames[c]
}

func (c ShoppingCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ShoppingCategory) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseShoppingCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ShoppingItem is a list entry. OwnerName and IsOwn are filled in by the
// visibility query relative to the requesting user; they are not stored.
type ShoppingItem struct {
	ID        string           `json:"id"`
	OwnerID   string           `json:"ownerId"`
	Name      string           `json:"name"`
	Quantity  int              `json:"quantity"`
	Category  ShoppingCategory `json:"category"`
	Completed bool             `json:"completed"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	OwnerName string           `json:"ownerName"`
	IsOwn     bool             `json:"isOwn"`
}

// ShareUser is the counterparty of a share edge.
type ShareUser struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	SharedAt time.Time `json:"sharedAt"`
}

// ShareStatus lists both directions of a user's sharing graph.
type ShareStatus struct {
	SharedWith []ShareUser `json:"sharedWith"`
	SharedBy   []ShareUser `json:"sharedBy"`
}

// AuditAction classifies a shopping list mutation.
type AuditAction int

const (
	AuditAdded AuditAction = iota
	AuditCompleted
	AuditUncompleted
	AuditDeleted
	AuditCleared
)

var auditActionNames = map[AuditAction]string{
	AuditAdded:       "added",
	AuditCompleted:   "completed",
	AuditUncompleted: "uncompleted",
	AuditDeleted:     "deleted",
	AuditCleared:     "cleared",
}

var auditActionFromName = map[string]AuditAction{
	"added":       AuditAdded,
	"completed":   AuditCompleted,
	"uncompleted": AuditUncompleted,
	"deleted":     AuditDeleted,
	"cleared":     AuditCleared,
}

func ParseAuditAction(s string) (AuditAction, error) {
	a, ok := auditActionFromName[s]
	if !ok {
		return AuditAdded, fmt.Errorf("unknown audit action: %q", s)
	}
	return a, nil
}

func (a AuditAction) String() string {
	return auditActionNames[a]
}

func (a AuditAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *AuditAction) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseAuditAction(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// AuditEntry is one append-only record of a shopping mutation. UserName is
// the acting user's display name, joined in at query time.
type AuditEntry struct {
	ID        string      `json:"id"`
	UserID    string      `json:"-"`
	Action    AuditAction `json:"action"`
	ItemName  string      `json:"itemName"`
	Details   *string     `json:"details"`
	UserName  string      `json:"userName"`
	CreatedAt time.Time   `json:"createdAt"`
}
