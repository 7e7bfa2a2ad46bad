package graph_test

import (
	"fmt"
	"log"

	"github.com/syssam/relink/graph"
	"github.com/syssam/relink/load"
	"github.com/syssam/relink/resolve"
	"github.com/syssam/relink/schema/rel"
)

func ExampleEngine() {
	customer, err := load.NewEntity("Customer",
		rel.OneToMany("orders", "Order").Ref("customer").Descriptor(),
	)
	if err != nil {
		log.Fatal(err)
	}
	order, err := load.NewEntity("Order",
		rel.ManyToOne("customer", "Customer").Field("customerId").Descriptor(),
	)
	if err != nil {
		log.Fatal(err)
	}
	schema, err := resolve.Resolve([]*load.Entity{customer, order})
	if err != nil {
		log.Fatal(err)
	}

	eng := graph.New(schema)
	alice := graph.NewRecord("Customer", 1)
	o := graph.NewRecord("Order", 100)
	if err := eng.SetRef(o, "customer", alice); err != nil {
		log.Fatal(err)
	}
	fmt.Println("customerId:", o.Value("customerId"))
	fmt.Println("orders:", len(alice.List("orders")))

	if err := eng.SetRef(o, "customer", nil); err != nil {
		log.Fatal(err)
	}
	fmt.Println("customerId:", o.Value("customerId"))
	fmt.Println("orders:", len(alice.List("orders")))
	// Output:
	// customerId: 1
	// orders: 1
	// customerId: 0
	// orders: 0
}
