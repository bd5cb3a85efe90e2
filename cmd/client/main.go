package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
)

// Minimal interactive client: type protocol commands on stdin, see replies
// and pushed messages on stdout.
func main() {
	addr := flag.String("addr", "127.0.0.1:5555", "Server address")
	flag.Parse()

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: unable to connect to the server: %s\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Println("Connected to the server.")
	fmt.Println("Commands:")
	fmt.Println("REGISTER <username> <password>, LOGIN <username> <password>,")
	fmt.Println("ONLINE, MESSAGE <message>, PRIVATE <username> <message>, QUIT")

	// The server pushes broadcasts and private messages at any time, so
	// reads get their own goroutine.
	go func() {
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			fmt.Println(scanner.Text())
		}
		fmt.Println("Disconnected from the server.")
		os.Exit(0)
	}()

	stdin := bufio.NewScanner(os.Stdin)
	fmt.Print("You: ")
	for stdin.Scan() {
		line := stdin.Text()
		if line == "" {
			fmt.Print("You: ")
			continue
		}

		if _, err := fmt.Fprintln(conn, line); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			break
		}
		fmt.Print("You: ")
	}
}
