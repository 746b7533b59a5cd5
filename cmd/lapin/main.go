package main

import "github.com/polochon-xp/app-le-lapin-blanc-sub000/cmd/lapin/root"

func main() {
	root.Execute()
}
