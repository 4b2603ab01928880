package mail

import "fmt"

// Message is the unit of outbound email, serialized onto the queue.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Queue is what the domain services publish to. The AMQP publisher implements
// it in production; tests swap in a capture fake.
type Queue interface {
	Enqueue(msg Message) error
}

func VerificationMessage(email, code string) Message {
	return Message{
		To:      email,
		Subject: "Verifica tu Correo Electrónico",
		Body:    fmt.Sprintf("Tu código de verificación es: %s", code),
	}
}

func RecoveryMessage(email, code string) Message {
	return Message{
		To:      email,
		Subject: "Recupera tu contraseña",
		Body:    fmt.Sprintf("Tu código de recuperación es: %s", code),
	}
}

func TempPasswordMessage(email, tempPassword string) Message {
	return Message{
		To:      email,
		Subject: "Tu nueva contraseña temporal",
		Body:    fmt.Sprintf("Tu nueva contraseña temporal es: %s\nPor favor, cámbiala después de iniciar sesión.", tempPassword),
	}
}
