package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"livesolve-backend/internal/models"
)

const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
)

// firebaseIssuerFormat is the OIDC issuer of Firebase ID tokens.
const firebaseIssuerFormat = "https://securetoken.google.com/%s"

// Claims is the identity extracted from a verified bearer token.
type Claims struct {
	UserID string
	Email  string
}

// TokenVerifier checks a raw bearer token and returns the caller identity.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

// AuthMiddleware guards a route group with bearer-token auth. Every
// failure (missing, malformed, invalid or expired token) produces the
// same 401 body; the reason only goes to the log.
func AuthMiddleware(verifier TokenVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			log.Debug("rejected request", zap.Error(err))
			unauthorized(c)
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), rawToken)
		if err != nil {
			log.Debug("rejected token", zap.Error(err))
			unauthorized(c)
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("missing authorization header")
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("invalid authorization header format")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", fmt.Errorf("empty bearer token")
	}
	return token, nil
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error: "could not validate credentials",
	})
	c.Abort()
}

// FirebaseVerifier validates Firebase ID tokens against the
// securetoken.google.com issuer for one project.
type FirebaseVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewFirebaseVerifier(ctx context.Context, projectID string) (*FirebaseVerifier, error) {
	issuer := fmt.Sprintf(firebaseIssuerFormat, projectID)
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover token issuer: %w", err)
	}

	return &FirebaseVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: projectID}),
	}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	var tokenClaims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&tokenClaims); err != nil {
		return nil, fmt.Errorf("failed to decode token claims: %w", err)
	}

	return &Claims{
		UserID: idToken.Subject,
		Email:  tokenClaims.Email,
	}, nil
}

// StaticVerifier validates HS256 tokens against a shared secret. Local
// development only; production runs must configure the OIDC verifier.
type StaticVerifier struct {
	secret []byte
}

func NewStaticVerifier(secret string) *StaticVerifier {
	return &StaticVerifier{secret: []byte(secret)}
}

func (v *StaticVerifier) Verify(_ context.Context, rawToken string) (*Claims, error) {
	token, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("missing user id in token")
	}

	email, _ := claims["email"].(string)
	return &Claims{UserID: sub, Email: email}, nil
}
