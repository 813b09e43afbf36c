package middleware

import (
	"net/http"
	"strings"

	"thesis-management-backend/app/permission"
	"thesis-management-backend/app/repository"
	"thesis-management-backend/utils"

	"github.com/gin-gonic/gin"
)

// Key context tempat actor disimpan oleh AuthMiddleware.
const actorKey = "actor"

// AuthMiddleware memvalidasi JWT dari header Authorization (Bearer token),
// lalu me-resolve profil role user DARI DATABASE (bukan dari isi token) dan
// menyimpannya sebagai permission.Actor di context. Resolusi per request
// membuat promosi capability (misal dosen baru jadi penguji) langsung
// berlaku tanpa menunggu token baru.
func AuthMiddleware(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Ambil header Authorization
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Authorization token required", "missing_or_invalid_authorization_header", nil))
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Authorization token required", "empty_token", nil))
			c.Abort()
			return
		}

		// Validasi token (signature + expiry)
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Invalid or expired token", err.Error(), nil))
			c.Abort()
			return
		}

		// Resolve profil role dari database
		user, err := store.Users().FindActorByID(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Account no longer exists", "unknown_user", nil))
			c.Abort()
			return
		}

		actor := permission.Actor{
			User:     *user,
			Student:  user.Student,
			Lecturer: user.Lecturer,
		}
		c.Set(actorKey, actor)

		c.Next()
	}
}

// GetActor mengambil permission.Actor yang disimpan AuthMiddleware.
// Hanya valid dipanggil dari handler di belakang middleware tersebut.
func GetActor(c *gin.Context) permission.Actor {
	v, _ := c.Get(actorKey)
	actor, _ := v.(permission.Actor)
	return actor
}
