package entity

type Country struct {
	ID          string `json:"country_id"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	FlagIcon    string `json:"flag_icon"`
}
