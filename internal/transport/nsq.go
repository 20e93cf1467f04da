// Copyright (c) 2026 Contributors to the Eclipse Foundation
//
// See the NOTICE file(s) distributed with this work for additional
// information regarding copyright ownership.
//
// This program and the accompanying materials are made available under the
// terms of the Eclipse Public License 2.0 which is available at
// https://www.eclipse.org/legal/epl-2.0, or the Apache License, Version 2.0
// which is available at https://www.apache.org/licenses/LICENSE-2.0.
//
// SPDX-License-Identifier: EPL-2.0 OR Apache-2.0

package transport

import (
	"errors"
	"sync"

	"github.com/eclipse-kanto/autopilot-panel/internal/logger"
	"github.com/eclipse-kanto/autopilot-panel/monitor"

	"github.com/google/uuid"
	"github.com/nsqio/go-nsq"
)

// NSQSubscriber subscribes to telemetry channels published as NSQ topics.
// Each subscription uses its own ephemeral NSQ channel, so the panel never steals messages from other consumers.
type NSQSubscriber struct {
	nsqd    string
	lookupd []string
}

// NewNSQSubscriber creates a subscriber connecting to the given nsqlookupd addresses, or to nsqd when there are none.
func NewNSQSubscriber(nsqd string, lookupd []string) *NSQSubscriber {
	return &NSQSubscriber{nsqd: nsqd, lookupd: lookupd}
}

// Subscribe starts consuming the topic named after the channel.
func (s *NSQSubscriber) Subscribe(channel string) (monitor.Subscription, error) {
	if !nsq.IsValidTopicName(channel) {
		return nil, errors.New("invalid channel name " + channel)
	}
	consumer, err := nsq.NewConsumer(channel, "panel-"+uuid.New().String()+"#ephemeral", nsq.NewConfig())
	if err != nil {
		return nil, err
	}
	consumer.SetLogger(logger.NSQ(), logger.NSQLogLevel())

	sub := newNSQSubscription(consumer, channel)
	if len(s.lookupd) > 0 {
		err = consumer.ConnectToNSQLookupds(s.lookupd)
	} else {
		err = consumer.ConnectToNSQD(s.nsqd)
	}
	if err != nil {
		logger.Errorf("fail to consume %s topic: %v", channel, err)
		sub.Release()
		return nil, err
	}
	logger.Infof("consuming %s topic", channel)
	return sub, nil
}

type nsqSubscription struct {
	consumer *nsq.Consumer
	channel  string

	lock    sync.Mutex
	handler monitor.MessageHandler
	once    sync.Once
}

func newNSQSubscription(consumer *nsq.Consumer, channel string) *nsqSubscription {
	sub := &nsqSubscription{consumer: consumer, channel: channel}
	consumer.AddHandler(sub)
	return sub
}

func (s *nsqSubscription) OnMessage(handler monitor.MessageHandler) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.handler = handler
}

// HandleMessage implements nsq.Handler. Messages are always finished, a telemetry line is never redelivered.
func (s *nsqSubscription) HandleMessage(message *nsq.Message) error {
	s.lock.Lock()
	handler := s.handler
	s.lock.Unlock()

	if handler == nil {
		logger.Debugf("no handler for message on %s topic, drop it", s.channel)
		return nil
	}
	handler(monitor.Message{Channel: s.channel, Payload: decodePayload(message.Body)})
	return nil
}

func (s *nsqSubscription) Release() error {
	s.once.Do(func() {
		s.consumer.Stop()
		<-s.consumer.StopChan
		logger.Infof("stopped consuming %s topic", s.channel)
	})
	return nil
}
