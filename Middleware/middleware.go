package Middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/samer29/vascare-sub001/Models"
	"github.com/samer29/vascare-sub001/Utils/Token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// JwtAuthMiddleware is the standard verifier for protected routes: the token
// must be present, well signed and unexpired. On success the caller identity
// is attached to the request context.
func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := Token.TokenValid(c); err != nil {
			if errors.Is(err, Token.ErrMissingToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			} else {
				c.JSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			}
			c.Abort()
			return
		}

		userID, err := Token.ExtractTokenID(c)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		grade, err := Token.ExtractGrade(c)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("grade", grade)
		c.Next()
	}
}

// RequireGrades guards a route behind an allow-list of grades. Runs after
// JwtAuthMiddleware.
func RequireGrades(grades ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := c.GetString("grade")
		for _, grade := range grades {
			if current == grade {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error":    "insufficient permission",
			"required": grades,
			"current":  current,
		})
		c.Abort()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireGrades(Models.GradeAdmin)
}

func RequireClinicalStaff() gin.HandlerFunc {
	return RequireGrades(Models.GradeAdmin, Models.GradeClinician)
}

// LicenseGate decides whether a request may reach the business routes at all.
// Evaluated in order, short-circuiting:
//
//  1. No bearer token: anonymous, fall through to the license check.
//  2. Token decoded with signature verification but WITHOUT expiry
//     validation. A decode failure falls through to the license check; an
//     expired admin token must still identify its holder as admin.
//  3. Admin grade: admit unconditionally, so an administrator can renew the
//     license or diagnose the system after expiry.
//  4. Everyone else is admitted only while the most recent license record
//     exists and has not lapsed.
func LicenseGate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := Token.ExtractToken(c)
		if tokenString != "" {
			grade, err := Token.DecodeGradeIgnoringExpiry(tokenString)
			if err == nil && grade == Models.GradeAdmin {
				c.Next()
				return
			}
		}

		license, err := Models.LatestLicense(db)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "License not activated"})
			c.Abort()
			return
		}
		if license.IsExpired(time.Now()) {
			c.JSON(http.StatusForbidden, gin.H{"error": "License expired"})
			c.Abort()
			return
		}
		c.Next()
	}
}
