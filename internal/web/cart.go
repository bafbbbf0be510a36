package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

const cartCookieName = "cart"

// cartLine is one entry in the cookie-backed cart.
type cartLine struct {
	ProductID string `json:"id"`
	Qty       int    `json:"qty"`
}

func readCart(r *http.Request) []cartLine {
	cookie, err := r.Cookie(cartCookieName)
	if err != nil {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var lines []cartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil
	}
	return lines
}

func writeCart(w http.ResponseWriter, lines []cartLine) {
	raw, err := json.Marshal(lines)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})
}

func addToCart(lines []cartLine, productID string, qty int) []cartLine {
	if qty < 1 {
		qty = 1
	}
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Qty += qty
			return lines
		}
	}
	return append(lines, cartLine{ProductID: productID, Qty: qty})
}

func removeFromCart(lines []cartLine, productID string) []cartLine {
	out := lines[:0]
	for _, l := range lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	return out
}
