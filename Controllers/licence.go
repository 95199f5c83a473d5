package Controllers

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/samer29/vascare-sub001/Models"
	"github.com/samer29/vascare-sub001/SSE"

	"github.com/gin-gonic/gin"
)

// licenceSecret is the shared 32-byte key the vendor tool encrypts activation
// keys with. The ciphertext is AES-256-CBC with a zero IV over
// "<start-date>|<expiry-date>", hex encoded.
var licenceSecret = []byte("vascare-activation-master-key-01")

func DecryptLicenceKey(key string) (start string, expiry string, err error) {
	ciphertext, err := hex.DecodeString(key)
	if err != nil {
		return "", "", errors.New("key is not valid hex")
	}

	block, err := aes.NewCipher(licenceSecret)
	if err != nil {
		return "", "", err
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", "", errors.New("key has invalid length")
	}

	iv := make([]byte, aes.BlockSize)
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, err = pkcs7Unpad(plaintext)
	if err != nil {
		return "", "", err
	}

	parts := strings.Split(string(plaintext), "|")
	if len(parts) != 2 {
		return "", "", errors.New("key payload is malformed")
	}
	return parts[0], parts[1], nil
}

func EncryptLicenceKey(start, expiry string) (string, error) {
	block, err := aes.NewCipher(licenceSecret)
	if err != nil {
		return "", err
	}
	plaintext := pkcs7Pad([]byte(start+"|"+expiry), aes.BlockSize)
	iv := make([]byte, aes.BlockSize)
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)
	return hex.EncodeToString(ciphertext), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("empty plaintext")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}

// RegisterLicence decrypts the activation key and inserts a new license row.
// Superseded rows are never touched; the newest row shadows them.
func (api *API) RegisterLicence(c *gin.Context) {
	var input struct {
		Key string `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, expiry, err := DecryptLicenceKey(input.Key)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid licence key"})
		return
	}

	license := Models.License{StartDate: start, ExpiryDate: expiry, EncryptedKey: input.Key}
	if err := api.DB.Create(&license).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	SSE.Broadcaster.Broadcast("refresh")
	c.JSON(http.StatusOK, gin.H{"message": "Licence registered successfully", "licence": license})
}

func (api *API) GetLicence(c *gin.Context) {
	license, err := Models.LatestLicense(api.DB)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "License not activated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"licence": license, "expired": license.IsExpired(time.Now())})
}

// LicenceHistory lists every registration, newest first. Old rows are kept as
// history, not cleaned up.
func (api *API) LicenceHistory(c *gin.Context) {
	var licenses []Models.License
	if err := api.DB.Model(&Models.License{}).Order("id DESC").Find(&licenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, licenses)
}
