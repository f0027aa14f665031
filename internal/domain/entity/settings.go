package entity

// ShopSettings holds the shop identity, print footer and message templates
type ShopSettings struct {
	ShopName         string `json:"shopName"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	GSTIN            string `json:"gstin"`
	FooterMessage    string `json:"footerMessage"`
	WhatsappTemplate string `json:"whatsappTemplate"`
	EmailSubject     string `json:"emailSubject"`
	EmailBody        string `json:"emailBody"`
}
