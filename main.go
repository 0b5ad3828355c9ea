package main

import "github.com/yorsh1111/lufs-normalizer/cmd"

func main() {
	cmd.Execute()
}
