// File: /services/email_service.go
package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"aquaevents-api/config"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer

	// In-memory storage for verification codes
	verificationCodes map[string]VerificationCode
	mutex             sync.RWMutex
}

type VerificationCode struct {
	Code      string    `json:"code"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	service := &EmailService{
		config:            cfg,
		dialer:            dialer,
		verificationCodes: make(map[string]VerificationCode),
	}

	go service.cleanupExpiredCodes()

	return service
}

// Generate a random 6-digit verification code
func (es *EmailService) generateVerificationCode() string {
	const digits = "0123456789"
	code := make([]byte, 6)

	for i := range code {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		code[i] = digits[num.Int64()]
	}

	return string(code)
}

// Send verification email
func (es *EmailService) SendVerificationEmail(email, name string) (string, error) {
	es.mutex.RLock()
	existingCode, exists := es.verificationCodes[email]
	es.mutex.RUnlock()

	var code string
	if exists && !existingCode.Used && time.Now().Before(existingCode.ExpiresAt) {
		code = existingCode.Code
		fmt.Printf("📧 Reusing existing verification code for %s: %s\n", email, code)
	} else {
		code = es.generateVerificationCode()

		// Codes expire in 10 minutes
		es.mutex.Lock()
		es.verificationCodes[email] = VerificationCode{
			Code:      code,
			Email:     email,
			ExpiresAt: time.Now().Add(10 * time.Minute),
			Used:      false,
		}
		es.mutex.Unlock()
		fmt.Printf("📧 Generated new verification code for %s: %s\n", email, code)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "AquaEvents - Verifica tu correo electrónico")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Verificación de correo</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #0077b6; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .code { background: #e9ecef; padding: 20px; text-align: center; border-radius: 8px; margin: 20px 0; }
        .code-number { font-size: 32px; font-weight: bold; color: #0077b6; letter-spacing: 8px; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🌊 AquaEvents</h1>
            <p>Verificación de correo</p>
        </div>
        <div class="content">
            <h2>¡Hola %s!</h2>
            <p>Bienvenido a AquaEvents. Verifica tu correo electrónico para completar tu registro y poder enviar eventos.</p>

            <div class="code">
                <p><strong>Tu código de verificación es:</strong></p>
                <div class="code-number">%s</div>
                <p><small>Este código caduca en 10 minutos.</small></p>
            </div>

            <p>Introduce este código en AquaEvents para verificar tu dirección de correo.</p>

            <p>Si no has creado una cuenta en AquaEvents, ignora este mensaje.</p>

            <p><strong>El equipo de AquaEvents</strong></p>
        </div>
        <div class="footer">
            <p>© 2025 AquaEvents.club. Todos los derechos reservados.</p>
            <p>Este es un mensaje automático, por favor no respondas.</p>
        </div>
    </div>
</body>
</html>`, name, code)

	textBody := fmt.Sprintf(`
¡Hola %s!

Bienvenido a AquaEvents. Verifica tu correo electrónico para completar tu registro y poder enviar eventos.

Tu código de verificación es: %s

Este código caduca en 10 minutos.

Introduce este código en AquaEvents para verificar tu dirección de correo.

Si no has creado una cuenta en AquaEvents, ignora este mensaje.

El equipo de AquaEvents

© 2025 AquaEvents.club. Todos los derechos reservados.
Este es un mensaje automático, por favor no respondas.
    `, name, code)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	fmt.Printf("📧 Verification email sent to %s with code: %s\n", email, code)
	return code, nil
}

// Verify the code
func (es *EmailService) VerifyCode(email, inputCode string) bool {
	es.mutex.RLock()
	storedCode, exists := es.verificationCodes[email]
	es.mutex.RUnlock()

	if !exists {
		fmt.Printf("❌ No verification code found for email: %s\n", email)
		return false
	}

	if storedCode.Used {
		fmt.Printf("❌ Verification code already used for: %s\n", email)
		return false
	}

	if time.Now().After(storedCode.ExpiresAt) {
		fmt.Printf("❌ Verification code expired for: %s\n", email)
		es.mutex.Lock()
		delete(es.verificationCodes, email)
		es.mutex.Unlock()
		return false
	}

	if storedCode.Code != inputCode {
		fmt.Printf("❌ Invalid verification code for %s\n", email)
		return false
	}

	// Mark as used
	es.mutex.Lock()
	storedCode.Used = true
	es.verificationCodes[email] = storedCode
	es.mutex.Unlock()

	fmt.Printf("✅ Verification code verified successfully for: %s\n", email)
	return true
}

// Get verification code for testing/debugging
func (es *EmailService) GetVerificationCode(email string) string {
	es.mutex.RLock()
	defer es.mutex.RUnlock()

	if code, exists := es.verificationCodes[email]; exists && !code.Used && time.Now().Before(code.ExpiresAt) {
		return code.Code
	}
	return ""
}

// Cleanup expired verification codes
func (es *EmailService) cleanupExpiredCodes() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		es.mutex.Lock()
		now := time.Now()
		for email, code := range es.verificationCodes {
			if now.After(code.ExpiresAt) || code.Used {
				delete(es.verificationCodes, email)
			}
		}
		es.mutex.Unlock()
	}
}

// Send welcome email after successful verification
func (es *EmailService) SendWelcomeEmail(email, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "¡Bienvenido a AquaEvents! 🌊")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Bienvenido a AquaEvents</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: linear-gradient(135deg, #0077b6, #00b4d8); color: white; padding: 30px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .feature { background: white; padding: 20px; margin: 15px 0; border-radius: 8px; border-left: 4px solid #0077b6; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🌊 ¡Bienvenido a AquaEvents!</h1>
            <p>El calendario de deportes acuáticos en España</p>
        </div>
        <div class="content">
            <h2>¡Hola %s!</h2>
            <p>🎉 Tu correo ha sido verificado y tu cuenta de AquaEvents ya está activa.</p>

            <h3>Qué puedes hacer ahora:</h3>

            <div class="feature">
                <h4>🏊 Descubre eventos</h4>
                <p>Explora competiciones de natación, triatlón, waterpolo y aguas abiertas en toda España.</p>
            </div>

            <div class="feature">
                <h4>📅 Publica tu evento</h4>
                <p>Envía tu evento al calendario; nuestro equipo lo revisará y lo publicará.</p>
            </div>

            <div class="feature">
                <h4>⭐ Guarda favoritos</h4>
                <p>Marca los eventos que te interesan y no te pierdas ninguna inscripción.</p>
            </div>

            <p>¡Nos vemos en el agua! 🏊</p>
            <p><strong>El equipo de AquaEvents</strong></p>
        </div>
        <div class="footer">
            <p>© 2025 AquaEvents.club. Todos los derechos reservados.</p>
        </div>
    </div>
</body>
</html>`, name)

	textBody := fmt.Sprintf(`
¡Hola %s!

🎉 Tu correo ha sido verificado y tu cuenta de AquaEvents ya está activa.

Qué puedes hacer ahora:

🏊 Descubre eventos
Explora competiciones de natación, triatlón, waterpolo y aguas abiertas en toda España.

📅 Publica tu evento
Envía tu evento al calendario; nuestro equipo lo revisará y lo publicará.

⭐ Guarda favoritos
Marca los eventos que te interesan y no te pierdas ninguna inscripción.

¡Nos vemos en el agua!
El equipo de AquaEvents

© 2025 AquaEvents.club. Todos los derechos reservados.
    `, name)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	fmt.Printf("📧 Welcome email sent to %s\n", email)
	return nil
}
