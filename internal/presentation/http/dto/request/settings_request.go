package request

// UpdateSettingsRequest represents a settings update request
type UpdateSettingsRequest struct {
	ShopName         string `json:"shop_name" binding:"required"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	GSTIN            string `json:"gstin"`
	FooterMessage    string `json:"footer_message"`
	WhatsappTemplate string `json:"whatsapp_template"`
	EmailSubject     string `json:"email_subject"`
	EmailBody        string `json:"email_body"`
}
