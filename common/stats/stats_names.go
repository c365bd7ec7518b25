package stats

/*
This file defines all the metrics being collected. As new metrics are added please follow this pattern.
*/

const (
	/************************* Locator metrics **************************/
	/*
		the number of container references handed out by a locator
	*/
	LocatorAcquireCounter = "acquireCounter"

	/*
		the number of container references given back to a locator
	*/
	LocatorReleaseCounter = "releaseCounter"

	/*
		the number of containers a locator currently holds open
	*/
	LocatorLiveContainersGauge = "liveContainersGauge"

	/*
		the number of containers a locator failed to create
	*/
	LocatorCreateErrCounter = "createErrCounter"

	/************************* Container metrics **************************/
	/*
		time it takes to (re)load a container's definitions and preload its graph
	*/
	ContainerRefreshLatency_ms = "refreshLatency_ms"

	/*
		the number of objects a container was asked to wire
	*/
	ContainerAutowireCounter = "autowireCounter"

	/************************* Pipeline metrics **************************/
	/*
		the number of messages that went through every action of a pipeline
	*/
	PipelineProcessedCounter = "processedCounter"

	/*
		the number of messages an action failed on
	*/
	PipelineFailedCounter = "failedCounter"

	/*
		time it takes a message to go through a pipeline
	*/
	PipelineProcessLatency_ms = "processLatency_ms"

	/************************* Sample service metrics **************************/
	/*
		the number of invoices sent
	*/
	InvoiceSentCounter = "invoiceSentCounter"

	/*
		the number of deliveries created
	*/
	DeliveryCreatedCounter = "deliveryCreatedCounter"
)
