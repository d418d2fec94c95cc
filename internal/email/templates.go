package email

import (
	"fmt"
)

func (s *Service) generatePasswordResetHTML(username, resetURL string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>CarbonTrack Şifre Sıfırlama</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .container {
            background-color: white;
            padding: 40px;
            border-radius: 12px;
            box-shadow: 0 2px 10px rgba(0, 0, 0, 0.1);
        }
        .header {
            text-align: center;
            margin-bottom: 30px;
        }
        .logo {
            font-size: 28px;
            font-weight: bold;
            color: #1f7a4d;
            margin-bottom: 10px;
        }
        .content {
            font-size: 16px;
            margin-bottom: 30px;
        }
        .cta-button {
            display: inline-block;
            background-color: #1f7a4d;
            color: white;
            padding: 12px 24px;
            text-decoration: none;
            border-radius: 6px;
            font-weight: 500;
        }
        .footer {
            margin-top: 40px;
            padding-top: 20px;
            border-top: 1px solid #e9ecef;
            font-size: 14px;
            color: #6c757d;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">🌍 CarbonTrack</div>
        </div>

        <div class="content">
            <p>Merhaba %s,</p>

            <p>Hesabınız için bir şifre sıfırlama talebi aldık. Yeni bir şifre belirlemek için aşağıdaki bağlantıya tıklayın:</p>

            <p style="text-align: center;">
                <a href="%s" class="cta-button">Şifremi Sıfırla</a>
            </p>

            <p>Bu bağlantı 1 saat boyunca geçerlidir. Talebi siz yapmadıysanız bu e-postayı yok sayabilirsiniz; şifreniz değişmez.</p>
        </div>

        <div class="footer">
            <p>CarbonTrack — kişisel karbon ayak izi takibi</p>
        </div>
    </div>
</body>
</html>`, username, resetURL)
}

func (s *Service) generatePasswordResetText(username, resetURL string) string {
	return fmt.Sprintf(`Merhaba %s,

Hesabınız için bir şifre sıfırlama talebi aldık. Yeni bir şifre belirlemek için bağlantıyı açın:

%s

Bu bağlantı 1 saat boyunca geçerlidir. Talebi siz yapmadıysanız bu e-postayı yok sayabilirsiniz; şifreniz değişmez.

CarbonTrack
`, username, resetURL)
}
