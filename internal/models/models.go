package models

import (
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	StatusActive  = "ACTIVE"
	StatusBlocked = "BLOCKED"

	MovieAvailable   = "AVAILABLE"
	MovieUnavailable = "UNAVAILABLE"
)

type User struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"userId"`
	FullName     string    `gorm:"not null"                 json:"fullName"`
	Age          int       `gorm:"not null"                 json:"age"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null"                 json:"role"`
	Status       string    `gorm:"not null"                 json:"status"`
	CreatedAt    time.Time `gorm:"not null"                 json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Movie struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"movieId"`
	Title         string    `gorm:"unique;not null"          json:"title"`
	Description   string    `gorm:"not null"                 json:"description"`
	Genre         string    `gorm:"not null;index"           json:"genre"`
	ReleaseDate   time.Time `gorm:"not null"                 json:"releaseDate"`
	AverageRating float64   `json:"averageRating"`
	Price         float64   `gorm:"not null"                 json:"price"`
	PosterURL     string    `json:"posterURL"`
	TrailerURL    string    `json:"trailerURL"`
	Status        string    `gorm:"not null"                 json:"status"`
	CreatedAt     time.Time `gorm:"not null"                 json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Purchase rows are immutable after creation; there is no update or delete path.
type Purchase struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"purchaseId"`
	TransactionID string    `gorm:"not null"                 json:"transactionId"`
	UserID        int       `gorm:"index;not null"           json:"userId"`
	PaymentMethod string    `json:"paymentMethod"`
	TotalPrice    float64   `gorm:"not null"                 json:"totalPrice"`
	PurchaseDate  time.Time `gorm:"not null"                 json:"purchaseDate"`
}

type PurchaseDetail struct {
	ID         int `gorm:"primaryKey;autoIncrement" json:"purchaseDetailId"`
	PurchaseID int `gorm:"index;not null"           json:"purchaseId"`
	MovieID    int `gorm:"not null"                 json:"movieId"`
}

type Cart struct {
	ID      int `gorm:"primaryKey;autoIncrement"                json:"cartId"`
	UserID  int `gorm:"index;not null;uniqueIndex:idx_cart_user_movie" json:"userId"`
	MovieID int `gorm:"not null;uniqueIndex:idx_cart_user_movie"       json:"movieId"`
}

type Favorite struct {
	ID      int `gorm:"primaryKey;autoIncrement"               json:"favoriteId"`
	UserID  int `gorm:"index;not null;uniqueIndex:idx_fav_user_movie" json:"userId"`
	MovieID int `gorm:"not null;uniqueIndex:idx_fav_user_movie"       json:"movieId"`
}

type Review struct {
	ID         int    `gorm:"primaryKey;autoIncrement" json:"reviewId"`
	UserID     int    `gorm:"index;not null"           json:"userId"`
	MovieID    int    `gorm:"index;not null"           json:"movieId"`
	ReviewText string `json:"reviewText"`
	Reported   bool   `gorm:"default:false"            json:"reported"`
}
