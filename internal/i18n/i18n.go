package i18n

import (
	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English, // default
	language.Turkish,
}

var matcher = language.NewMatcher(supported)

var messages = map[language.Tag]map[string]string{
	language.English: {
		"account_activation_success":      "Account is activated",
		"account_activation_failure":      "This account is either active or the token is invalid",
		"authentication_failure":          "Incorrect credentials",
		"inactive_authentication_failure": "Account is inactive",
		"user_create_success":             "User created",
		"email_inuse":                     "E-mail in use",
		"username_inuse":                  "Username in use",
		"email_failure":                   "E-mail Failure",
		"email_not_inuse":                 "E-mail not found",
		"validation_failure":              "Validation Failure",
		"user_not_found":                  "User not found",
		"hoax_submit_success":             "Hoax is saved",
		"unauthorized_user_update":        "You are not authorized to update user",
		"unauthorized_user_delete":        "You are not authorized to delete user",
		"unauthorized_hoax_submit":        "You are not authorized to post hoax",
		"unauthorized_hoax_delete":        "You are not authorized to delete this hoax",
		"unauthorized_password_reset":     "You are not authorized to update your password. Please follow the password reset steps again",
		"password_update_success":         "Password updated",
		"password_reset_request_success":  "Check your e-mail for resetting your password",
		"user_delete_success":             "User is deleted",
		"hoax_delete_success":             "Hoax is deleted",
		"attachment_size_limit":           "Uploaded file cannot be bigger than 5MB",
		"server_failure":                  "Unexpected error occurred",
		"username_null":                   "Username cannot be null",
		"username_size":                   "Must have min 4 and max 32 characters",
		"email_null":                      "E-mail cannot be null",
		"email_invalid":                   "E-mail is not valid",
		"password_null":                   "Password cannot be null",
		"password_size":                   "Password must have at least 6 characters",
		"password_pattern":                "Password must have at least 1 uppercase, 1 lowercase letter and 1 number",
		"hoax_content_size":               "Hoax must be min 10 and max 5000 characters",
		"profile_image_size":              "Your profile image cannot be bigger than 2MB",
		"unsupported_image_file":          "Only PNG and JPG files are allowed",
	},
	language.Turkish: {
		"account_activation_success":      "Hesabınız aktifleştirildi",
		"account_activation_failure":      "Bu hesap aktif ya da kod hatalı",
		"authentication_failure":          "Kullanıcı bilgileri hatalı",
		"inactive_authentication_failure": "Hesap aktif değil",
		"user_create_success":             "Kullanıcı oluşturuldu",
		"email_inuse":                     "Bu E-Posta kullanılıyor",
		"username_inuse":                  "Bu kullanıcı adı kullanılıyor",
		"email_failure":                   "E-Posta gönderiminde hata oluştu",
		"email_not_inuse":                 "E-Posta bulunamadı",
		"validation_failure":              "Girilen değerler uygun değil",
		"user_not_found":                  "Kullanıcı bulunamadı",
		"hoax_submit_success":             "Hoax kaydedildi",
		"unauthorized_user_update":        "Bu işlem için yetkiniz bulunmamaktadır",
		"unauthorized_user_delete":        "Bu işlem için yetkiniz bulunmamaktadır",
		"unauthorized_hoax_submit":        "Hoax göndermek için yetkiniz bulunmamaktadır",
		"unauthorized_hoax_delete":        "Bu hoaxu silme yetkiniz bulunmamaktadır",
		"unauthorized_password_reset":     "Şifre güncelleme yetkiniz bulunmamaktadır. Şifre yenileme adımlarını tekrarlayınız",
		"password_update_success":         "Şifreniz güncellendi",
		"password_reset_request_success":  "Şifre yenileme için E-Postanızı kontrol ediniz",
		"user_delete_success":             "Kullanıcı silindi",
		"hoax_delete_success":             "Hoax silindi",
		"attachment_size_limit":           "Dosya boyutu 5MB'dan büyük olamaz",
		"server_failure":                  "Beklenmeyen bir hata oluştu",
		"username_null":                   "Kullanıcı adı boş olamaz",
		"username_size":                   "En az 4 en fazla 32 karakter olmalı",
		"email_null":                      "E-Posta boş olamaz",
		"email_invalid":                   "E-Posta geçerli değil",
		"password_null":                   "Şifre boş olamaz",
		"password_size":                   "Şifre en az 6 karakter olmalı",
		"password_pattern":                "Şifrede en az 1 büyük, 1 küçük harf ve 1 sayı bulunmalıdır",
		"hoax_content_size":               "Hoax en az 10 en fazla 5000 karakter olmalı",
		"profile_image_size":              "Profil resmi 2MB'dan büyük olamaz",
		"unsupported_image_file":          "Sadece PNG ve JPG dosyaları yüklenebilir",
	},
}

// Match resolves an Accept-Language header to the best supported locale.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, index, _ := matcher.Match(tags...)
	return supported[index]
}

// Message returns the catalog entry for key in the given locale, falling
// back to English and finally to the key itself.
func Message(tag language.Tag, key string) string {
	if msg, ok := messages[tag][key]; ok {
		return msg
	}
	if msg, ok := messages[language.English][key]; ok {
		return msg
	}
	return key
}
