package service

import "fmt"

func accountActivationEmailTemplate(activationURL, token, name, appName, supportEmail string) (string, string) {
	subject := fmt.Sprintf("%s - Account Activation", appName)
	body := fmt.Sprintf(`Hi %s, welcome to %s!

Please click the link below to activate your account:

%s

Or enter this activation code in the app: %s

If you did not create this account, you can ignore this email.

Questions? Contact us at %s`,
		name, appName, activationURL, token, supportEmail)
	return subject, body
}

func passwordResetEmailTemplate(resetURL, name, appName, supportEmail string) (string, string) {
	subject := fmt.Sprintf("%s - Password Reset", appName)
	body := fmt.Sprintf(`Hi %s,

You requested a password reset. Please click the link below to set a new
password:

%s

If you did not request this, you can ignore this email and your password
will remain unchanged.

Questions? Contact us at %s`,
		name, resetURL, supportEmail)
	return subject, body
}
