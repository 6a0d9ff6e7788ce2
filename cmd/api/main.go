package main

func main() {
	Serve()
}
