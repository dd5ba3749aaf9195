package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case []User:
		o.printUsers(v)
	case AuthResult:
		o.printAuthResult(v)
	case Room:
		o.printRoom(v)
	case []Room:
		o.printRooms(v)
	case JoinResult:
		o.printJoinResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResult combines user and token
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Room response type
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Player1   *string   `json:"player1"`
	Player2   *string   `json:"player2"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoomSummary is the compact room shape in a join result
type RoomSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JoinResult is the response from joining a room
type JoinResult struct {
	Message string      `json:"message"`
	Room    RoomSummary `json:"room"`
}

// HealthResult is the health check response
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("ID:    %s\n", u.ID)
	fmt.Printf("Name:  %s\n", u.Name)
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Roles: %s\n", strings.Join(u.Roles, ", "))
}

func (o *Output) printUsers(users []User) {
	if len(users) == 0 {
		fmt.Println("No users")
		return
	}
	for _, u := range users {
		fmt.Printf("%s  %s  <%s>  [%s]\n", u.ID, u.Name, u.Email, strings.Join(u.Roles, ", "))
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.Token)
}

func seatLabel(seat *string) string {
	if seat == nil {
		return "-"
	}
	return *seat
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("ID:      %s\n", r.ID)
	fmt.Printf("Name:    %s\n", r.Name)
	fmt.Printf("Status:  %s\n", r.Status)
	fmt.Printf("Player1: %s\n", seatLabel(r.Player1))
	fmt.Printf("Player2: %s\n", seatLabel(r.Player2))
}

func (o *Output) printRooms(rooms []Room) {
	if len(rooms) == 0 {
		fmt.Println("No rooms")
		return
	}
	for _, r := range rooms {
		fmt.Printf("%s  %s  %s  %s vs %s\n",
			r.ID, r.Name, r.Status, seatLabel(r.Player1), seatLabel(r.Player2))
	}
}

func (o *Output) printJoinResult(j JoinResult) {
	fmt.Printf("%s: %s (%s)\n", j.Message, j.Room.Name, j.Room.ID)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
