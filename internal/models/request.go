package models

type GenerateCopyRequest struct {
	ProductName string `json:"product_name" binding:"required" example:"Smartphone XYZ Pro"`
	Features    string `json:"features" binding:"required" example:"Tela 6.5, 128GB"`
	Category    string `json:"category" binding:"required" example:"Eletrônicos"`
}

type SaveGenerationRequest struct {
	ProductName string `json:"product_name" binding:"required"`
	Features    string `json:"features" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// ProcessImageRequest is shared by the three image gateways. The original
// frontend sends the generation id as product_id; the studio gateway also
// accepts an explicit generation_id which takes precedence.
type ProcessImageRequest struct {
	ImageURL     string `json:"image_url" binding:"required"`
	ProductID    string `json:"product_id,omitempty"`
	GenerationID string `json:"generation_id,omitempty"`
}

// RecordID resolves which row the gateway should update.
func (r *ProcessImageRequest) RecordID() string {
	if r.GenerationID != "" {
		return r.GenerationID
	}
	return r.ProductID
}

type BanRequest struct {
	Banned bool `json:"banned"`
}

// HotmartWebhookPayload covers the observed shapes of Hotmart purchase
// events. Buyer data and the transaction reference move around between
// top-level fields and a nested data/purchase object depending on the
// event version.
type HotmartWebhookPayload struct {
	Status          string            `json:"status"`
	Hottok          string            `json:"hottok"`
	Token           string            `json:"token"`
	Secret          string            `json:"secret"`
	Transaction     string            `json:"transaction"`
	PurchaseCode    string            `json:"purchase_code"`
	TransactionCode string            `json:"transaction_code"`
	Buyer           *HotmartBuyer     `json:"buyer"`
	Purchase        *HotmartPurchase  `json:"purchase"`
	Data            *HotmartInnerData `json:"data"`
}

type HotmartBuyer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type HotmartPurchase struct {
	Transaction string `json:"transaction"`
	Code        string `json:"code"`
}

type HotmartInnerData struct {
	Buyer        *HotmartBuyer `json:"buyer"`
	Transaction  string        `json:"transaction"`
	PurchaseCode string        `json:"purchase_code"`
	Hottok       string        `json:"hottok"`
}

// BodyToken returns the first authentication token candidate found in the
// payload body. Hotmart configurations differ on where the hottok lands.
func (p *HotmartWebhookPayload) BodyToken() string {
	if p.Hottok != "" {
		return p.Hottok
	}
	if p.Token != "" {
		return p.Token
	}
	return p.Secret
}

// BuyerEmail and BuyerName search the top-level and nested buyer objects.
func (p *HotmartWebhookPayload) BuyerEmail() string {
	if p.Buyer != nil && p.Buyer.Email != "" {
		return p.Buyer.Email
	}
	if p.Data != nil && p.Data.Buyer != nil {
		return p.Data.Buyer.Email
	}
	return ""
}

func (p *HotmartWebhookPayload) BuyerName() string {
	if p.Buyer != nil && p.Buyer.Name != "" {
		return p.Buyer.Name
	}
	if p.Data != nil && p.Data.Buyer != nil && p.Data.Buyer.Name != "" {
		return p.Data.Buyer.Name
	}
	return "Usuário"
}

// TransactionRef walks the known transaction-code fields in priority order.
// The body hottok is skipped when it was consumed as the auth token, so a
// webhook authenticated through the body never reuses its secret as the
// customer's initial password.
func (p *HotmartWebhookPayload) TransactionRef(hottokUsedForAuth bool) string {
	if p.Transaction != "" {
		return p.Transaction
	}
	if p.PurchaseCode != "" {
		return p.PurchaseCode
	}
	if !hottokUsedForAuth && p.Hottok != "" {
		return p.Hottok
	}
	if p.TransactionCode != "" {
		return p.TransactionCode
	}
	if p.Data != nil {
		if p.Data.Transaction != "" {
			return p.Data.Transaction
		}
		if p.Data.PurchaseCode != "" {
			return p.Data.PurchaseCode
		}
		if p.Data.Hottok != "" {
			return p.Data.Hottok
		}
	}
	if p.Purchase != nil {
		if p.Purchase.Transaction != "" {
			return p.Purchase.Transaction
		}
		if p.Purchase.Code != "" {
			return p.Purchase.Code
		}
	}
	return ""
}
