package model

// AppSettings is a single JSON object in the settings collection.
// The email flags gate dispatch fan-out per notification type; SMS and
// push are single switches. Push has no provider wired.
type AppSettings struct {
	StoreName         string `json:"storeName"`
	SupportEmail      string `json:"supportEmail"`
	EmailNewOrder     bool   `json:"emailNewOrder"`
	EmailNewUser      bool   `json:"emailNewUser"`
	EmailLowStock     bool   `json:"emailLowStock"`
	SMSNotifications  bool   `json:"smsNotifications"`
	PushNotifications bool   `json:"pushNotifications"`
}

// DefaultSettings applies when the settings file is absent.
func DefaultSettings() AppSettings {
	return AppSettings{
		StoreName:         "Storefront",
		SupportEmail:      "support@storefront.local",
		EmailNewOrder:     true,
		EmailNewUser:      true,
		EmailLowStock:     true,
		SMSNotifications:  false,
		PushNotifications: false,
	}
}
