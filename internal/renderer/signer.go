package renderer

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"time"

	digitorus_pdf "github.com/digitorus/pdf"
	"github.com/digitorus/pdfsign/sign"
)

type SigningConfig struct {
	Enabled  bool
	CertPath string
	KeyPath  string
	Name     string
	Location string
}

// Signer applies a certification signature to rendered certificates.
// A disabled signer passes documents through untouched.
type Signer struct {
	certificate *x509.Certificate
	privateKey  *rsa.PrivateKey
	name        string
	location    string
	enabled     bool
	now         func() time.Time
}

func NewSigner(cfg SigningConfig) (*Signer, error) {
	if !cfg.Enabled {
		slog.Info("Certificate signing disabled in configuration")
		return &Signer{}, nil
	}
	if cfg.CertPath == "" || cfg.KeyPath == "" {
		return nil, fmt.Errorf("signing enabled but certificate or key path not configured")
	}

	certPEM, err := os.ReadFile(cfg.CertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate file %s: %w", cfg.CertPath, err)
	}
	certBlock, _ := pem.Decode(certPEM)
	if certBlock == nil {
		return nil, fmt.Errorf("failed to decode certificate PEM from %s", cfg.CertPath)
	}
	certificate, err := x509.ParseCertificate(certBlock.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}

	keyPEM, err := os.ReadFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file %s: %w", cfg.KeyPath, err)
	}
	privateKey, err := parseRSAKey(keyPEM)
	if err != nil {
		return nil, err
	}

	slog.Info("Certificate signer initialized",
		"cert_subject", certificate.Subject.String(),
		"cert_expiry", certificate.NotAfter)

	return &Signer{
		certificate: certificate,
		privateKey:  privateKey,
		name:        cfg.Name,
		location:    cfg.Location,
		enabled:     true,
		now:         time.Now,
	}, nil
}

func parseRSAKey(keyPEM []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return nil, fmt.Errorf("failed to decode private key PEM")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA format")
	}
	return rsaKey, nil
}

func (s *Signer) IsEnabled() bool {
	return s != nil && s.enabled
}

// Sign returns the signed document. When signing fails the unsigned bytes are
// returned and the failure is logged.
func (s *Signer) Sign(pdfBytes []byte, reason string) []byte {
	if !s.IsEnabled() || len(pdfBytes) == 0 {
		return pdfBytes
	}

	signed, err := s.sign(pdfBytes, reason)
	if err != nil || len(signed) == 0 {
		slog.Warn("Certificate signing failed, returning unsigned PDF", "error", err, "reason", reason)
		return pdfBytes
	}
	return signed
}

func (s *Signer) sign(pdfBytes []byte, reason string) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during signing: %v", r)
		}
	}()

	input := bytes.NewReader(pdfBytes)
	reader, err := digitorus_pdf.NewReader(input, int64(len(pdfBytes)))
	if err != nil {
		return nil, fmt.Errorf("open pdf for signing: %w", err)
	}

	signData := sign.SignData{
		Signature: sign.SignDataSignature{
			Info: sign.SignDataSignatureInfo{
				Name:     s.name,
				Location: s.location,
				Reason:   reason,
				Date:     s.now(),
			},
			CertType:   sign.CertificationSignature,
			DocMDPPerm: sign.AllowFillingExistingFormFieldsAndSignaturesPerms,
		},
		Signer:      s.privateKey,
		Certificate: s.certificate,
	}

	var output bytes.Buffer
	if err := sign.Sign(input, &output, reader, int64(len(pdfBytes)), signData); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}
