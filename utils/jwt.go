package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Secret se pisa desde ENV (JWT_SECRET) en main
var Secret = []byte("bienes-raices-secreto")

func GenerateToken(usuarioID uint, nombre, rol, agencia string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"usuario_id": usuarioID,
		"nombre":     nombre,
		"rol":        rol,
		"agencia":    agencia,
	})
	return token.SignedString(Secret)
}

func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, _ := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return Secret, nil
	})

	if token != nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
			return claims, nil
		}
	}
	return nil, errors.New("token inválido")
}
