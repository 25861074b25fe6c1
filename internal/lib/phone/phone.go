// Package phone определяет страну номера телефона.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// CountryFlag возвращает код страны ISO 3166-1 alpha-2 в нижнем регистре
// для номера в международном формате. Для неразборчивого номера возвращается "".
func CountryFlag(number string) string {
	num, err := phonenumbers.Parse(number, "")
	if err != nil {
		return ""
	}
	region := phonenumbers.GetRegionCodeForNumber(num)
	if region == "" || region == phonenumbers.UNKNOWN_REGION {
		return ""
	}
	return strings.ToLower(region)
}
