/*
 *  main.go
 *  cmd
 *
 *  Created by Haibao Tang on 12/12/19
 *  Copyright © 2019 Haibao Tang. All rights reserved.
 */

package main

import (
	"log"

	"github.com/op/go-logging"
	"github.com/tanghaibao/mirbench"
)

// main is the entrypoint for the entire program
func main() {
	logging.SetBackend(mirbench.BackendFormatter)
	err := mirbench.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
