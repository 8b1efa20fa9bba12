package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/cashflow_guard/config"
	"github.com/mmdatafocus/cashflow_guard/utils"
)

type Client struct {
	ClientId    uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"client_id"`
	ClientName  string    `gorm:"size:100;not null" json:"client_name"`
	Email       string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	CompanyName *string   `gorm:"size:100" json:"company_name"`
	Phone       *string   `gorm:"size:20" json:"phone"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewClient struct {
	ClientName  string  `json:"client_name" binding:"required,max=100"`
	Email       string  `json:"email" binding:"required,email,max=100"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone"`
}

// blank fields are left unchanged
type UpdateClient struct {
	ClientName  *string `json:"client_name" binding:"omitempty,max=100"`
	Email       *string `json:"email" binding:"omitempty,email,max=100"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone"`
}

// CreateClient(input) (Client,error)
// UpdateClientById(id, input) (Client,error)
// DeleteClient(id) error
// GetClient(id) (Client,error)
// ListClients() ([]Client,error)

func normalizePhone(phone *string) (*string, error) {
	phone = utils.TrimPtr(phone)
	if phone == nil {
		return nil, nil
	}
	formatted, err := utils.FormatPhoneNumber(*phone, config.PhoneRegion())
	if err != nil {
		var errs utils.ValidationErrors
		errs.Add("phone", "A valid phone number is required")
		return nil, errs
	}
	return &formatted, nil
}

func validateClientEmail(ctx context.Context, email string, exceptId uuid.UUID) error {
	err := utils.ValidateUnique[Client](ctx, "email", email, "client_id", exceptId)
	if errors.Is(err, utils.ErrDuplicate) {
		var errs utils.ValidationErrors
		errs.Add("email", "Email already exists")
		return errs
	}
	return err
}

func CreateClient(ctx context.Context, input *NewClient) (*Client, error) {
	phone, err := normalizePhone(input.Phone)
	if err != nil {
		return nil, err
	}
	email := utils.NormalizeEmail(input.Email)
	if err := validateClientEmail(ctx, email, uuid.Nil); err != nil {
		return nil, err
	}

	client := Client{
		ClientId:    uuid.New(),
		ClientName:  input.ClientName,
		Email:       email,
		CompanyName: utils.TrimPtr(input.CompanyName),
		Phone:       phone,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func UpdateClientById(ctx context.Context, id uuid.UUID, input *UpdateClient) (*Client, error) {
	updates := map[string]interface{}{}
	if name := utils.TrimPtr(input.ClientName); name != nil {
		updates["client_name"] = *name
	}
	if email := utils.TrimPtr(input.Email); email != nil {
		normalized := utils.NormalizeEmail(*email)
		if err := validateClientEmail(ctx, normalized, id); err != nil {
			return nil, err
		}
		updates["email"] = normalized
	}
	if company := utils.TrimPtr(input.CompanyName); company != nil {
		updates["company_name"] = *company
	}
	if input.Phone != nil {
		phone, err := normalizePhone(input.Phone)
		if err != nil {
			return nil, err
		}
		if phone != nil {
			updates["phone"] = *phone
		}
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	client, err := utils.FetchModel[Client](ctx, "client_id", id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(client).Updates(updates).Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[Client](ctx, "client_id", id)
}

func DeleteClient(ctx context.Context, id uuid.UUID) error {
	return utils.DeleteModel[Client](ctx, "client_id", id)
}

func GetClient(ctx context.Context, id uuid.UUID) (*Client, error) {
	return utils.FetchModel[Client](ctx, "client_id", id)
}

func ListClients(ctx context.Context) ([]*Client, error) {
	return utils.FetchAllModels[Client](ctx, "client_name ASC")
}
