// Package model defines domain data structures used across the app: conversion
// requests and results, conversion tasks, and status enums. Structures are
// designed for direct binding in the UI and explicit state transitions.
package model
